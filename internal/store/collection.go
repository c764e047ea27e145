// Package store keeps the client-side view of remote collections. Every
// holder mirrors the last known server state; it is a cache, never the
// source of truth.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collection is a goroutine-safe list of records with the state a view needs
// to render it.
type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	err     string
	id      func(T) uuid.UUID
}

func NewCollection[T any](id func(T) uuid.UUID) *Collection[T] {
	return &Collection[T]{id: id}
}

// Items returns a copy of the cached records.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err is the message of the last failed operation, or "".
func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) Get(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.loading = false
	c.err = ""
}

func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

func (c *Collection[T]) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err.Error()
	} else {
		c.err = ""
	}
}

func (c *Collection[T]) replaceAll(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	c.items = items
}

func (c *Collection[T]) prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
}

func (c *Collection[T]) append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// upsert replaces the record with the same id, or prepends it when the
// record is not cached yet.
func (c *Collection[T]) upsert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = item
			return
		}
	}
	c.items = append([]T{item}, c.items...)
}

func (c *Collection[T]) remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = slices.DeleteFunc(c.items, func(item T) bool { return c.id(item) == id })
}

// op runs one remote call against c. Failures are logged and recorded on the
// collection; the cached items are left alone.
type op struct {
	log  *zap.Logger
	name string
}

func (o op) fail(err error, fields ...zap.Field) {
	o.log.Error(o.name+" failed", append(fields, zap.Error(err))...)
}

func fetch[T any](ctx context.Context, o op, c *Collection[T], call func(context.Context) ([]T, error)) ([]T, error) {
	c.begin()
	items, err := call(ctx)
	if err != nil {
		o.fail(err)
		c.finish(err)
		return nil, err
	}
	c.replaceAll(items)
	c.finish(nil)
	return items, nil
}

type placement int

const (
	atFront placement = iota
	atBack
	inPlace
)

func write[T any](ctx context.Context, o op, c *Collection[T], at placement, call func(context.Context) (*T, error)) (*T, error) {
	c.begin()
	item, err := call(ctx)
	if err != nil {
		o.fail(err)
		c.finish(err)
		return nil, err
	}
	switch at {
	case atFront:
		c.prepend(*item)
	case atBack:
		c.append(*item)
	case inPlace:
		c.upsert(*item)
	}
	c.finish(nil)
	return item, nil
}

func drop[T any](ctx context.Context, o op, c *Collection[T], id uuid.UUID, call func(context.Context, uuid.UUID) error) error {
	c.begin()
	if err := call(ctx, id); err != nil {
		o.fail(err, zap.String("id", id.String()))
		c.finish(err)
		return err
	}
	c.remove(id)
	c.finish(nil)
	return nil
}

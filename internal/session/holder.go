// Package session holds the signed-in identity for a client process. A
// Holder is created once, initialized from stored tokens and invalidated on
// sign-out together with every cache registered through OnSignOut.
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"refugee-portal/internal/domain"
	"refugee-portal/internal/gateway"
)

const LoadingTimeout = 5 * time.Second

var (
	ErrLoadingTimeout = errors.New("session did not load within the timeout")
	ErrNotSignedIn    = errors.New("not signed in")
)

type EventKind string

const (
	SignedIn       EventKind = "signed_in"
	SignedOut      EventKind = "signed_out"
	TokenRefreshed EventKind = "token_refreshed"
)

type AuthEvent struct {
	Kind    EventKind
	Profile *domain.Profile
}

// Gateway is the part of the API client the holder needs.
type Gateway interface {
	SignUp(ctx context.Context, input domain.SignUpInput, serviceKey string) (*domain.AuthResult, error)
	SignIn(ctx context.Context, input domain.SignInInput) (*domain.AuthResult, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Session(ctx context.Context) (*domain.SessionInfo, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type Holder struct {
	gw      Gateway
	store   TokenStore
	log     *zap.Logger
	timeout time.Duration

	mu      sync.RWMutex
	tokens  *Tokens
	profile *domain.Profile
	email   string
	loading bool

	subMu     sync.Mutex
	subs      map[int]chan AuthEvent
	nextSub   int
	closed    bool
	onSignOut []func()
}

func New(gw Gateway, store TokenStore, log *zap.Logger) *Holder {
	return &Holder{
		gw:      gw,
		store:   store,
		log:     log,
		timeout: LoadingTimeout,
		loading: true,
		subs:    make(map[int]chan AuthEvent),
	}
}

// Init restores stored tokens and loads the session behind them. Loading is
// forced off after the timeout even if the gateway never answers; a late
// answer still signs the holder in.
func (h *Holder) Init(ctx context.Context) error {
	tokens, err := h.store.Load(ctx)
	if err != nil {
		h.log.Warn("failed to read stored tokens", zap.Error(err))
	}
	if tokens == nil {
		h.setLoading(false)
		return nil
	}

	h.mu.Lock()
	h.tokens = tokens
	h.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- h.restore(context.WithoutCancel(ctx))
	}()

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		h.setLoading(false)
		return err
	case <-timer.C:
		h.setLoading(false)
		h.log.Warn("session restore timed out", zap.Duration("timeout", h.timeout))
		return ErrLoadingTimeout
	}
}

func (h *Holder) restore(ctx context.Context) error {
	info, err := h.gw.Session(ctx)
	if gateway.IsStatus(err, http.StatusUnauthorized) {
		if err = h.Refresh(ctx); err == nil {
			info, err = h.gw.Session(ctx)
		}
	}
	if err != nil {
		h.log.Warn("stored session is no longer valid", zap.Error(err))
		h.clearLocal(ctx)
		return err
	}

	profile, err := h.gw.GetProfile(ctx, info.Profile.ID)
	if err != nil {
		h.log.Error("failed to fetch profile", zap.Error(err))
		profile = info.Profile
	}

	h.mu.Lock()
	h.email = info.Email
	h.profile = profile
	h.mu.Unlock()

	h.publish(AuthEvent{Kind: SignedIn, Profile: profile})
	return nil
}

// SignUp returns the gateway's result unchanged. When the account does not
// need email verification the holder signs in with the returned tokens.
func (h *Holder) SignUp(ctx context.Context, input domain.SignUpInput, serviceKey string) (*domain.AuthResult, error) {
	res, err := h.gw.SignUp(ctx, input, serviceKey)
	if err != nil {
		return nil, err
	}
	if res.Tokens != nil {
		h.signedIn(ctx, input.Email, res)
	}
	return res, nil
}

func (h *Holder) SignIn(ctx context.Context, input domain.SignInInput) (*domain.AuthResult, error) {
	res, err := h.gw.SignIn(ctx, input)
	if err != nil {
		return nil, err
	}
	if res.Tokens != nil {
		h.signedIn(ctx, input.Email, res)
	}
	return res, nil
}

func (h *Holder) signedIn(ctx context.Context, email string, res *domain.AuthResult) {
	tokens := fromPair(res.Tokens)
	if err := h.store.Save(ctx, tokens); err != nil {
		h.log.Warn("failed to persist tokens", zap.Error(err))
	}

	h.mu.Lock()
	h.tokens = tokens
	h.profile = res.Profile
	h.email = email
	h.loading = false
	h.mu.Unlock()

	h.emit(ctx, SignedIn)
}

// SignOut revokes the refresh session and clears local state. Local state is
// cleared even when the gateway call fails; that error is returned as is.
func (h *Holder) SignOut(ctx context.Context) error {
	h.mu.RLock()
	var refresh string
	if h.tokens != nil {
		refresh = h.tokens.RefreshToken
	}
	h.mu.RUnlock()

	var err error
	if refresh != "" {
		err = h.gw.SignOut(ctx, refresh)
	}
	h.clearLocal(ctx)
	return err
}

// Reset drops stored tokens before signing out, for a holder stuck loading.
func (h *Holder) Reset(ctx context.Context) error {
	if err := h.store.Clear(ctx); err != nil {
		h.log.Warn("failed to clear stored tokens", zap.Error(err))
	}
	return h.SignOut(ctx)
}

func (h *Holder) Refresh(ctx context.Context) error {
	h.mu.RLock()
	tokens := h.tokens
	h.mu.RUnlock()
	if tokens == nil || tokens.RefreshToken == "" {
		return ErrNotSignedIn
	}

	pair, err := h.gw.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		return err
	}

	next := fromPair(pair)
	if err := h.store.Save(ctx, next); err != nil {
		h.log.Warn("failed to persist tokens", zap.Error(err))
	}

	h.mu.Lock()
	h.tokens = next
	signedIn := h.profile != nil
	h.mu.Unlock()

	if signedIn {
		h.emit(ctx, TokenRefreshed)
	}
	return nil
}

func (h *Holder) clearLocal(ctx context.Context) {
	if err := h.store.Clear(ctx); err != nil {
		h.log.Warn("failed to clear stored tokens", zap.Error(err))
	}

	h.mu.Lock()
	wasSignedIn := h.tokens != nil || h.profile != nil
	h.tokens = nil
	h.profile = nil
	h.email = ""
	h.loading = false
	h.mu.Unlock()

	h.subMu.Lock()
	hooks := append([]func(){}, h.onSignOut...)
	h.subMu.Unlock()
	for _, fn := range hooks {
		fn()
	}

	if wasSignedIn {
		h.publish(AuthEvent{Kind: SignedOut})
	}
}

// emit re-fetches the profile and then notifies subscribers.
func (h *Holder) emit(ctx context.Context, kind EventKind) {
	h.mu.RLock()
	var id uuid.UUID
	if h.profile != nil {
		id = h.profile.ID
	}
	h.mu.RUnlock()

	if id != uuid.Nil {
		profile, err := h.gw.GetProfile(ctx, id)
		if err != nil {
			h.log.Error("failed to refresh profile", zap.String("event", string(kind)), zap.Error(err))
		} else {
			h.mu.Lock()
			h.profile = profile
			h.mu.Unlock()
		}
	}

	h.publish(AuthEvent{Kind: kind, Profile: h.Profile()})
}

// Subscribe returns a channel of auth events and a function that cancels the
// subscription. The channel is closed by cancel or by Close.
func (h *Holder) Subscribe() (<-chan AuthEvent, func()) {
	h.subMu.Lock()
	defer h.subMu.Unlock()

	ch := make(chan AuthEvent, 16)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextSub
	h.nextSub++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.subMu.Lock()
			defer h.subMu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
}

func (h *Holder) publish(ev AuthEvent) {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn("dropping auth event for slow subscriber", zap.String("event", string(ev.Kind)))
		}
	}
}

// OnSignOut registers fn to run whenever the session ends.
func (h *Holder) OnSignOut(fn func()) {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	h.onSignOut = append(h.onSignOut, fn)
}

// Close ends every subscription. The holder must not be used afterwards.
func (h *Holder) Close() {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// AccessToken is suitable as a gateway.TokenProvider.
func (h *Holder) AccessToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.tokens == nil {
		return ""
	}
	return h.tokens.AccessToken
}

func (h *Holder) Profile() *domain.Profile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.profile
}

func (h *Holder) Email() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.email
}

func (h *Holder) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

func (h *Holder) SignedIn() bool {
	return h.Profile() != nil
}

// LandingRoute is where the current identity should be routed; signed-out
// users land on the sign-in page.
func (h *Holder) LandingRoute() string {
	p := h.Profile()
	if p == nil {
		return domain.LoginRoute
	}
	return p.Role.LandingRoute()
}

// Guard reports whether the current identity may open section, and where to
// send it otherwise.
func (h *Holder) Guard(section domain.Section) (bool, string) {
	p := h.Profile()
	if p == nil {
		return false, domain.LoginRoute
	}
	return section.Guard(p.Role)
}

func (h *Holder) setLoading(v bool) {
	h.mu.Lock()
	h.loading = v
	h.mu.Unlock()
}

func fromPair(p *domain.TokenPair) *Tokens {
	return &Tokens{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresAt: p.ExpiresAt}
}

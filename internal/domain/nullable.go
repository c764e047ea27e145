package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Nullable* types distinguish an absent JSON key from an explicit null in
// partial updates. Set is true whenever the key was present.

type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

type NullableDate struct {
	Value *Date
	Set   bool
}

func (n *NullableDate) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var d Date
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

func (n NullableDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

type NullableUUID struct {
	Value *uuid.UUID
	Set   bool
}

func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

func (n NullableUUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func SetString(v string) NullableString {
	return NullableString{Value: &v, Set: true}
}

func SetUUID(v uuid.UUID) NullableUUID {
	return NullableUUID{Value: &v, Set: true}
}

func SetDate(v Date) NullableDate {
	return NullableDate{Value: &v, Set: true}
}

// Apply copies the value into dst when the key was present.
func (n NullableString) Apply(dst **string) {
	if n.Set {
		*dst = n.Value
	}
}

func (n NullableDate) Apply(dst **Date) {
	if n.Set {
		*dst = n.Value
	}
}

func (n NullableUUID) Apply(dst **uuid.UUID) {
	if n.Set {
		*dst = n.Value
	}
}

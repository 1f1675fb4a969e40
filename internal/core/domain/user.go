package domain

import (
	"encoding/json"
	"fmt"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is the identity the server returns on login. Only the role is decoded
// strictly. The id is kept as raw JSON because its shape belongs to the
// server. Name and email are read when they are non-empty strings and otherwise
// stay in Extra untouched, as does every field the client does not know about.
type User struct {
	ID    json.RawMessage `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Email string          `json:"email,omitempty"`
	Role  Role            `json:"role"`

	Extra map[string]json.RawMessage `json:"-"`
}

// IDString renders the id the way the server sent it, without quotes for
// string ids.
func (u *User) IDString() string {
	if u == nil || len(u.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(u.ID, &s); err == nil {
		return s
	}
	return string(u.ID)
}

func (u User) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		if k == "role" {
			continue
		}
		fields[k] = v
	}
	if len(u.ID) > 0 {
		fields["id"] = u.ID
	}
	if u.Name != "" {
		fields["name"] = u.Name
	}
	if u.Email != "" {
		fields["email"] = u.Email
	}
	fields["role"] = u.Role
	return json.Marshal(fields)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	*u = User{}
	for k, v := range all {
		switch k {
		case "role":
			if err := json.Unmarshal(v, &u.Role); err != nil {
				return fmt.Errorf("user role: %w", err)
			}
			continue
		case "id":
			u.ID = v
			continue
		case "name":
			if nonEmptyString(v, &u.Name) {
				continue
			}
		case "email":
			if nonEmptyString(v, &u.Email) {
				continue
			}
		}
		if u.Extra == nil {
			u.Extra = make(map[string]json.RawMessage)
		}
		u.Extra[k] = v
	}
	return nil
}

func nonEmptyString(raw json.RawMessage, dst *string) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return false
	}
	*dst = s
	return true
}

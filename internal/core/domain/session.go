package domain

import (
	"encoding/json"
	"strconv"
)

// SessionKey is the storage key holding the serialized session record.
const SessionKey = "session"

type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// HasRole reports whether the session belongs to a user with the given role.
func (s *Session) HasRole(role Role) bool {
	return s != nil && s.User != nil && s.User.Role == role
}

type LookupState int

const (
	SessionAbsent LookupState = iota
	SessionPresent
	SessionInvalid
)

func (s LookupState) String() string {
	switch s {
	case SessionPresent:
		return "present"
	case SessionInvalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Lookup is the result of reading the persisted session. Session is only set
// when State is SessionPresent.
type Lookup struct {
	Session *Session
	State   LookupState
}

// Payload is an opaque JSON object returned by the server.
type Payload map[string]any

// Text returns the named field rendered as text. Missing, null, false, zero
// and empty values read as "".
func (p Payload) Text(key string) string {
	v := p[key]
	if !Truthy(v) {
		return ""
	}
	return Text(v)
}

// Truthy reports whether a decoded JSON value counts as set: anything other
// than null, false, 0 or "".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != ""
	default:
		return true
	}
}

// Text renders a decoded JSON value as text. Strings are returned as-is,
// numbers and booleans in their JSON form, null as "" and composites as JSON.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Decode re-encodes the payload into v.
func (p Payload) Decode(v any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// NewRoom builds the payload the admin room endpoint expects.
func NewRoom(roomNumber string, capacity, available int) Payload {
	return Payload{
		"roomNumber": roomNumber,
		"capacity":   capacity,
		"available":  available,
	}
}

type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`

	Raw Payload `json:"-"`
}

// UnmarshalJSON accepts any truthy success flag and a token or message of any
// scalar type, rendered as text.
func (r *LoginResult) UnmarshalJSON(data []byte) error {
	var fields struct {
		Success any   `json:"success"`
		Token   any   `json:"token"`
		User    *User `json:"user"`
		Message any   `json:"message"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = LoginResult{
		Success: Truthy(fields.Success),
		Token:   Text(fields.Token),
		User:    fields.User,
		Message: Text(fields.Message),
	}
	return nil
}

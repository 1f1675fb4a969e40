package services

import (
	"time"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
)

// DefaultLanding is where denied guards send the user.
const DefaultLanding = "index.html"

type DenyReason string

const (
	DenyNone         DenyReason = ""
	DenyNoSession    DenyReason = "no session"
	DenyRoleMismatch DenyReason = "role mismatch"
	DenyExpired      DenyReason = "token expired"
)

// Decision is the outcome of a guard check. Redirect is empty when allowed.
type Decision struct {
	Allowed  bool
	Reason   DenyReason
	Redirect string
}

// CheckRole decides whether sess may act with the required role. It has no
// side effects; callers perform the redirect.
func CheckRole(sess *domain.Session, required domain.Role, now time.Time, landing string) Decision {
	if landing == "" {
		landing = DefaultLanding
	}
	deny := func(reason DenyReason) Decision {
		return Decision{Reason: reason, Redirect: landing}
	}

	if sess == nil {
		return deny(DenyNoSession)
	}
	if !sess.HasRole(required) {
		return deny(DenyRoleMismatch)
	}
	if TokenExpired(sess.Token, now) {
		return deny(DenyExpired)
	}
	return Decision{Allowed: true}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
)

// HostelClient maps each hostel API operation onto a single executor call.
type HostelClient struct {
	executor ports.RequestExecutor
	sessions *SessionStore
	landing  string
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.HostelAPI = (*HostelClient)(nil)

type Option func(*HostelClient)

// WithLanding sets the redirect target used by the guards.
func WithLanding(target string) Option {
	return func(c *HostelClient) { c.landing = target }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *HostelClient) { c.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *HostelClient) { c.logger = logger }
}

func NewHostelClient(executor ports.RequestExecutor, sessions *SessionStore, opts ...Option) *HostelClient {
	c := &HostelClient{
		executor: executor,
		sessions: sessions,
		landing:  DefaultLanding,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "hostel-client")
	return c
}

func (c *HostelClient) Sessions() *SessionStore {
	return c.sessions
}

func (c *HostelClient) GetUser(ctx context.Context) *domain.User {
	sess := c.sessions.Get(ctx)
	if sess == nil {
		return nil
	}
	return sess.User
}

func (c *HostelClient) CheckStudent(ctx context.Context) Decision {
	return CheckRole(c.sessions.Get(ctx), domain.RoleStudent, c.now(), c.landing)
}

func (c *HostelClient) CheckAdmin(ctx context.Context) Decision {
	return CheckRole(c.sessions.Get(ctx), domain.RoleAdmin, c.now(), c.landing)
}

// EnsureStudent redirects through r unless the session belongs to a student.
func (c *HostelClient) EnsureStudent(ctx context.Context, r ports.Redirector) bool {
	return c.enforce(c.CheckStudent(ctx), domain.RoleStudent, r)
}

// EnsureAdmin redirects through r unless the session belongs to an admin.
func (c *HostelClient) EnsureAdmin(ctx context.Context, r ports.Redirector) bool {
	return c.enforce(c.CheckAdmin(ctx), domain.RoleAdmin, r)
}

func (c *HostelClient) enforce(d Decision, role domain.Role, r ports.Redirector) bool {
	if d.Allowed {
		return true
	}
	c.logger.Info("guard denied", "required_role", role, "reason", d.Reason, "redirect", d.Redirect)
	if r != nil {
		r.Redirect(d.Redirect)
	}
	return false
}

type loginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Login authenticates and, when the server reports success, persists the
// returned token and user as the new session.
func (c *HostelClient) Login(ctx context.Context, email, password string, role domain.Role) (*domain.LoginResult, error) {
	payload, err := c.executor.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   loginRequest{Email: email, Password: password, Role: role},
	})
	if err != nil {
		return nil, err
	}

	var res domain.LoginResult
	if err := payload.Decode(&res); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	res.Raw = payload

	if res.Success {
		if err := c.sessions.Set(ctx, &domain.Session{Token: res.Token, User: res.User}); err != nil {
			return &res, err
		}
		c.logger.Info("logged in", "email", email, "role", role)
	}
	return &res, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HostelClient) Register(ctx context.Context, name, email, password string) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/register",
		Body:   registerRequest{Name: name, Email: email, Password: password},
	})
}

// Logout notifies the server and always clears the local session, even when
// the remote call fails. The remote error is still returned.
func (c *HostelClient) Logout(ctx context.Context) error {
	_, remoteErr := c.executor.Do(ctx, ports.Request{Method: http.MethodPost, Path: "/logout"})
	if remoteErr != nil {
		c.logger.Warn("logout request failed, clearing local session anyway", "err", remoteErr)
	}
	clearErr := c.sessions.Clear(ctx)
	return errors.Join(remoteErr, clearErr)
}

func (c *HostelClient) ListRooms(ctx context.Context) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/rooms"})
}

type bookRequest struct {
	RoomID int `json:"roomId"`
}

func (c *HostelClient) BookRoom(ctx context.Context, roomID int) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/book",
		Body:   bookRequest{RoomID: roomID},
	})
}

func (c *HostelClient) GetMyBooking(ctx context.Context) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/myBooking"})
}

func (c *HostelClient) CancelMyBooking(ctx context.Context) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{Method: http.MethodDelete, Path: "/myBooking"})
}

// AdminAddRoom posts room as-is; its fields are defined by the server.
func (c *HostelClient) AdminAddRoom(ctx context.Context, room domain.Payload) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/admin/rooms",
		Body:   room,
	})
}

func (c *HostelClient) AdminListBookings(ctx context.Context) (domain.Payload, error) {
	return c.executor.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/admin/bookings"})
}

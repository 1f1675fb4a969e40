package ports

import (
	"context"
	"net/http"

	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
)

type Request struct {
	Method  string
	Path    string
	Body    any
	Headers http.Header
}

// RequestExecutor sends one request to the hostel API and returns the decoded
// payload, or an error for transport failures and non-2xx responses.
type RequestExecutor interface {
	Do(ctx context.Context, req Request) (domain.Payload, error)
}

// Redirector performs the navigation a denied guard asks for.
type Redirector interface {
	Redirect(target string)
}

type HostelAPI interface {
	GetUser(ctx context.Context) *domain.User
	Login(ctx context.Context, email, password string, role domain.Role) (*domain.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (domain.Payload, error)
	Logout(ctx context.Context) error
	ListRooms(ctx context.Context) (domain.Payload, error)
	BookRoom(ctx context.Context, roomID int) (domain.Payload, error)
	GetMyBooking(ctx context.Context) (domain.Payload, error)
	CancelMyBooking(ctx context.Context) (domain.Payload, error)
	AdminAddRoom(ctx context.Context, room domain.Payload) (domain.Payload, error)
	AdminListBookings(ctx context.Context) (domain.Payload, error)
}

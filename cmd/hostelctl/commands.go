package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/health"
	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/httpclient"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/ports"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/services"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitDenied  = 2
	exitUsage   = 64
)

type guardKind int

const (
	guardNone guardKind = iota
	guardStudent
	guardAdmin
)

type command struct {
	name  string
	args  string
	nargs [2]int // min, max
	guard guardKind
	run   func(c *cli, ctx context.Context, args []string) (any, error)
}

var commands = []command{
	{name: "login", args: "<email> <password> [student|admin]", nargs: [2]int{2, 3}, run: (*cli).login},
	{name: "register", args: "<name> <email> <password>", nargs: [2]int{3, 3}, run: (*cli).register},
	{name: "logout", nargs: [2]int{0, 0}, run: (*cli).logout},
	{name: "whoami", nargs: [2]int{0, 0}, run: (*cli).whoami},
	{name: "rooms", nargs: [2]int{0, 0}, guard: guardStudent, run: (*cli).rooms},
	{name: "book", args: "<roomId>", nargs: [2]int{1, 1}, guard: guardStudent, run: (*cli).book},
	{name: "my-booking", nargs: [2]int{0, 0}, guard: guardStudent, run: (*cli).myBooking},
	{name: "cancel", nargs: [2]int{0, 0}, guard: guardStudent, run: (*cli).cancel},
	{name: "admin-add-room", args: "<roomNumber> <capacity> <available>", nargs: [2]int{3, 3}, guard: guardAdmin, run: (*cli).adminAddRoom},
	{name: "admin-bookings", nargs: [2]int{0, 0}, guard: guardAdmin, run: (*cli).adminBookings},
	{name: "status", nargs: [2]int{0, 0}, run: (*cli).status},
}

func commandHelp() string {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %s %s\n", cmd.name, cmd.args)
	}
	return b.String()
}

type cli struct {
	client   *services.HostelClient
	store    ports.KeyValueStore
	executor ports.RequestExecutor
	format   string
	stdout   io.Writer
	stderr   io.Writer
}

// redirector turns a guard denial into a hint on stderr; a terminal has no
// page to navigate to.
type redirector struct {
	w      io.Writer
	target string
}

func (r *redirector) Redirect(target string) {
	r.target = target
	fmt.Fprintf(r.w, "not signed in with the required role; continue at %s (hostelctl login)\n", target)
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(c.stderr, "usage: hostelctl [flags] <command> [args]\n\ncommands:\n%s", commandHelp())
		return exitUsage
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(c.stderr, "hostelctl: unknown command %q\n", args[0])
		return exitUsage
	}

	rest := args[1:]
	if len(rest) < cmd.nargs[0] || len(rest) > cmd.nargs[1] {
		fmt.Fprintf(c.stderr, "usage: hostelctl %s %s\n", cmd.name, cmd.args)
		return exitUsage
	}

	r := &redirector{w: c.stderr}
	switch cmd.guard {
	case guardStudent:
		if !c.client.EnsureStudent(ctx, r) {
			return exitDenied
		}
	case guardAdmin:
		if !c.client.EnsureAdmin(ctx, r) {
			return exitDenied
		}
	}

	result, err := cmd.run(c, ctx, rest)
	if err != nil {
		var apiErr *httpclient.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(c.stderr, "hostelctl: %s: %s\n", cmd.name, apiErr.Message)
		} else {
			fmt.Fprintf(c.stderr, "hostelctl: %s: %v\n", cmd.name, err)
		}
		return exitFailure
	}
	if result != nil {
		if err := c.print(result); err != nil {
			fmt.Fprintf(c.stderr, "hostelctl: write output: %v\n", err)
			return exitFailure
		}
	}
	return exitOK
}

func (c *cli) print(v any) error {
	switch c.format {
	case "yaml":
		enc := yaml.NewEncoder(c.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(normalize(v)); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// normalize converts v to plain maps and slices so YAML output uses the same
// field names as the JSON wire format.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func (c *cli) login(ctx context.Context, args []string) (any, error) {
	role := domain.RoleStudent
	if len(args) == 3 {
		role = domain.Role(args[2])
		if role != domain.RoleStudent && role != domain.RoleAdmin {
			return nil, fmt.Errorf("unknown role %q", args[2])
		}
	}
	res, err := c.client.Login(ctx, args[0], args[1], role)
	if err != nil {
		return nil, err
	}
	return res.Raw, nil
}

func (c *cli) register(ctx context.Context, args []string) (any, error) {
	return c.client.Register(ctx, args[0], args[1], args[2])
}

func (c *cli) logout(ctx context.Context, _ []string) (any, error) {
	return nil, c.client.Logout(ctx)
}

func (c *cli) whoami(ctx context.Context, _ []string) (any, error) {
	user := c.client.GetUser(ctx)
	if user == nil {
		return nil, errors.New("not logged in")
	}
	return user, nil
}

func (c *cli) rooms(ctx context.Context, _ []string) (any, error) {
	return c.client.ListRooms(ctx)
}

func (c *cli) book(ctx context.Context, args []string) (any, error) {
	roomID, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid room id %q", args[0])
	}
	return c.client.BookRoom(ctx, roomID)
}

func (c *cli) myBooking(ctx context.Context, _ []string) (any, error) {
	return c.client.GetMyBooking(ctx)
}

func (c *cli) cancel(ctx context.Context, _ []string) (any, error) {
	return c.client.CancelMyBooking(ctx)
}

func (c *cli) adminAddRoom(ctx context.Context, args []string) (any, error) {
	capacity, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid capacity %q", args[1])
	}
	available, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("invalid available count %q", args[2])
	}
	return c.client.AdminAddRoom(ctx, domain.NewRoom(args[0], capacity, available))
}

func (c *cli) adminBookings(ctx context.Context, _ []string) (any, error) {
	return c.client.AdminListBookings(ctx)
}

func (c *cli) status(ctx context.Context, _ []string) (any, error) {
	report := health.NewChecker(c.store, c.executor).Report(ctx)
	if report.Status != "UP" {
		_ = c.print(report)
		return nil, errors.New("unhealthy")
	}
	return report, nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/httpclient"
	"github.com/AchilleasB/hostel-booking/api-client/internal/adapters/storage"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/domain"
	"github.com/AchilleasB/hostel-booking/api-client/internal/core/services"
)

type testCLI struct {
	*cli
	sessions *services.SessionStore
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	paths    *[]string
}

func newTestCLI(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) testCLI {
	t.Helper()

	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	sessions := services.NewSessionStore(store, nil)
	executor := httpclient.NewExecutor(httpclient.Config{BaseURL: server.URL + "/api"}, sessions)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return testCLI{
		cli: &cli{
			client:   services.NewHostelClient(executor, sessions),
			store:    store,
			executor: executor,
			format:   "json",
			stdout:   stdout,
			stderr:   stderr,
		},
		sessions: sessions,
		stdout:   stdout,
		stderr:   stderr,
		paths:    &paths,
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestCLI_LoginThenRooms(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			writeJSON(w, http.StatusOK, `{"success":true,"token":"t1","user":{"id":1,"role":"student"}}`)
		case "/api/rooms":
			if r.Header.Get(httpclient.AuthHeader) != "t1" {
				writeJSON(w, http.StatusUnauthorized, `{"message":"Unauthorized"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"rooms":[{"id":1,"roomNumber":"A-101"}]}`)
		}
	})
	ctx := context.Background()

	if code := tc.run(ctx, []string{"login", "a@b.com", "pw"}); code != exitOK {
		t.Fatalf("login exit %d, stderr %q", code, tc.stderr.String())
	}
	tc.stdout.Reset()

	if code := tc.run(ctx, []string{"rooms"}); code != exitOK {
		t.Fatalf("rooms exit %d, stderr %q", code, tc.stderr.String())
	}
	var out map[string]any
	if err := json.Unmarshal(tc.stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode output %q: %v", tc.stdout.String(), err)
	}
	if _, ok := out["rooms"]; !ok {
		t.Errorf("expected rooms in output, got %v", out)
	}
}

func TestCLI_StudentCommandWithoutSessionIsDenied(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	if code := tc.run(context.Background(), []string{"book", "3"}); code != exitDenied {
		t.Errorf("expected exit %d, got %d", exitDenied, code)
	}
	if !strings.Contains(tc.stderr.String(), services.DefaultLanding) {
		t.Errorf("expected landing hint, got %q", tc.stderr.String())
	}
	if len(*tc.paths) != 0 {
		t.Errorf("expected no API calls, got %v", *tc.paths)
	}
}

func TestCLI_AdminCommandAsStudentIsDenied(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})
	ctx := context.Background()
	if err := tc.sessions.Set(ctx, &domain.Session{Token: "t1", User: &domain.User{Role: domain.RoleStudent}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if code := tc.run(ctx, []string{"admin-bookings"}); code != exitDenied {
		t.Errorf("expected exit %d, got %d", exitDenied, code)
	}
}

func TestCLI_AdminAddRoom(t *testing.T) {
	var body map[string]any
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})
	ctx := context.Background()
	if err := tc.sessions.Set(ctx, &domain.Session{Token: "t9", User: &domain.User{Role: domain.RoleAdmin}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if code := tc.run(ctx, []string{"admin-add-room", "B-2", "3", "1"}); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, tc.stderr.String())
	}
	if body["roomNumber"] != "B-2" || body["capacity"] != float64(3) || body["available"] != float64(1) {
		t.Errorf("unexpected room body: %v", body)
	}
	if got := (*tc.paths)[0]; got != "POST /api/admin/rooms" {
		t.Errorf("expected POST /api/admin/rooms, got %s", got)
	}
}

func TestCLI_ServerMessageIsReported(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"Room not available"}`)
	})
	ctx := context.Background()
	if err := tc.sessions.Set(ctx, &domain.Session{Token: "t1", User: &domain.User{Role: domain.RoleStudent}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if code := tc.run(ctx, []string{"book", "3"}); code != exitFailure {
		t.Errorf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.Contains(tc.stderr.String(), "Room not available") {
		t.Errorf("expected server message, got %q", tc.stderr.String())
	}
}

func TestCLI_LogoutClearsSession(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, ``)
	})
	ctx := context.Background()
	if err := tc.sessions.Set(ctx, &domain.Session{Token: "t1", User: &domain.User{Role: domain.RoleStudent}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if code := tc.run(ctx, []string{"logout"}); code != exitFailure {
		t.Errorf("expected failure exit for server error, got %d", code)
	}
	if tc.sessions.Get(ctx) != nil {
		t.Error("expected session cleared")
	}
}

func TestCLI_WhoamiYAML(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {})
	tc.format = "yaml"
	ctx := context.Background()
	if err := tc.sessions.Set(ctx, &domain.Session{Token: "t1", User: &domain.User{Name: "Ada", Role: domain.RoleAdmin}}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if code := tc.run(ctx, []string{"whoami"}); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, tc.stderr.String())
	}
	out := tc.stdout.String()
	if !strings.Contains(out, "role: admin") || !strings.Contains(out, "name: Ada") {
		t.Errorf("unexpected yaml output %q", out)
	}
}

func TestCLI_Usage(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	for name, args := range map[string][]string{
		"no_command":      nil,
		"unknown_command": {"teleport"},
		"missing_args":    {"register", "Ada"},
		"too_many_args":   {"logout", "now"},
	} {
		t.Run(name, func(t *testing.T) {
			if code := tc.run(ctx, args); code != exitUsage {
				t.Errorf("expected exit %d, got %d", exitUsage, code)
			}
		})
	}
}

func TestCLI_StatusUp(t *testing.T) {
	tc := newTestCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"rooms":[]}`)
	})

	if code := tc.run(context.Background(), []string{"status"}); code != exitOK {
		t.Fatalf("exit %d, stderr %q", code, tc.stderr.String())
	}
	if !strings.Contains(tc.stdout.String(), `"status": "UP"`) {
		t.Errorf("unexpected status output %q", tc.stdout.String())
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	publicapp "github.com/sngm3741/restaurant-directory/api/internal/public/application"
	publicdomain "github.com/sngm3741/restaurant-directory/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }

type emptyRepository struct{}

func (emptyRepository) Search(context.Context, string, int) ([]publicdomain.Restaurant, error) {
	return nil, nil
}
func (emptyRepository) FindByID(context.Context, string) (*publicdomain.Restaurant, error) {
	return nil, publicapp.ErrNotFound
}
func (emptyRepository) FindByRestaurantID(context.Context, string) (*publicdomain.Restaurant, error) {
	return nil, publicapp.ErrNotFound
}
func (emptyRepository) List(context.Context, publicapp.Paging) ([]publicdomain.Restaurant, error) {
	return nil, nil
}
func (emptyRepository) Count(context.Context) (int64, error) { return 0, nil }

func newTestServer(pingErr error, origins []string) *Server {
	return &Server{
		logger:         log.New(io.Discard, "", 0),
		health:         stubPinger{err: pingErr},
		restaurants:    publicapp.NewRestaurantQueryService(emptyRepository{}, 0),
		allowedOrigins: origins,
	}
}

func TestRootHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(nil, []string{"*"}).routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != rootMessage {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantState  string
	}{
		{name: "ok", wantStatus: http.StatusOK, wantState: "ok"},
		{name: "degraded", pingErr: errors.New("server selection timeout"), wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(tt.pingErr, nil).routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["status"] != tt.wantState {
				t.Errorf("status field = %q, want %q", body["status"], tt.wantState)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	handler := newTestServer(nil, []string{"https://app.example.com"}).routes()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/restaurant", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got header %q", got)
	}
}

type recordingIndexer struct{ calls int }

func (r *recordingIndexer) EnsureIndexes(context.Context) error {
	r.calls++
	return nil
}

func TestEnsureIndexes(t *testing.T) {
	idx := &recordingIndexer{}
	srv := newTestServer(nil, nil)
	srv.indexes = idx

	if err := srv.ensureIndexes(context.Background()); err != nil {
		t.Fatalf("ensureIndexes: %v", err)
	}
	if idx.calls != 1 {
		t.Errorf("calls = %d, want 1", idx.calls)
	}
}

func TestRunReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	srv := newTestServer(nil, nil)
	srv.addr = ln.Addr().String()

	if err := srv.Run(); err == nil {
		t.Fatal("Run returned nil for an address already in use")
	}
}

package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// trace returns a middleware that appends name to *log around next.
func trace(log *[]string, name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*log = append(*log, name+">")
			next.ServeHTTP(w, r)
			*log = append(*log, "<"+name)
		})
	}
}

func TestRouter_MiddlewareLayering(t *testing.T) {
	var log []string
	r := New(trace(&log, "global"))
	cart := r.Group(trace(&log, "group"))
	cart.Put("/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		log = append(log, "handler:"+r.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	}, trace(&log, "route"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/cart/c1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	want := "global> group> route> handler:c1 <route <group <global"
	if got := strings.Join(log, " "); got != want {
		t.Errorf("call order\n got %s\nwant %s", got, want)
	}
}

func TestRouter_GroupMiddlewareStaysInGroup(t *testing.T) {
	var log []string
	r := New()
	r.Group(trace(&log, "payments")).Post("/payment/verify", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/order/{id}", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/order/o1", nil))
	if len(log) != 0 {
		t.Errorf("group middleware ran outside its group: %v", log)
	}
}

func TestRouter_Fallback(t *testing.T) {
	logged := false
	r := New(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logged = true
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/order/{id}", func(w http.ResponseWriter, r *http.Request) {})
	r.Fallback()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("expected JSON envelope, got %s", w.Body.String())
	}
	if !logged {
		t.Error("global middleware did not run for unmatched route")
	}
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(Recovery(logger))
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestCORS_Preflight(t *testing.T) {
	r := New(CORS([]string{"https://shop.example"}))
	r.Fallback()

	req := httptest.NewRequest(http.MethodOptions, "/cart", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/cart", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("origin should not be allowed, got %q", got)
	}
}

func TestRouter_RoutesAndNilMiddleware(t *testing.T) {
	r := New()
	api := r.Group()
	api.Post("/order", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}, nil)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	routes := r.Routes()
	if len(routes) != 2 || routes[0] != "POST /order" || routes[1] != "GET /health" {
		t.Fatalf("unexpected routes %v", routes)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/order", nil))
	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
}

func TestLogger_LevelsByStatus(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := New(Logger(logger))
	r.Get("/plant/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false}`))
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plant/x", nil))

	line := buf.String()
	if !strings.Contains(line, "level=WARN") || !strings.Contains(line, "status=404") || !strings.Contains(line, "bytes=17") {
		t.Errorf("unexpected access line %q", line)
	}
}

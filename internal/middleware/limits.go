package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	KB = 1024
	MB = 1024 * KB

	// DefaultMaxBodySize bounds cart, order and payment commands.
	DefaultMaxBodySize = 64 * KB

	// WebhookMaxBodySize bounds gateway webhook payloads, which embed the full intent.
	WebhookMaxBodySize = 1 * MB

	DefaultTimeout = 30 * time.Second
)

// MaxBodySize rejects bodies larger than maxBytes with 413. A declared
// Content-Length over the limit is refused before the handler runs; chunked
// bodies are cut off by http.MaxBytesReader and surface as *http.MaxBytesError
// when the handler decodes them. A non-positive limit uses DefaultMaxBodySize.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondTooLarge(w, r, fmt.Sprintf("Request body exceeds %d bytes", maxBytes))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout bounds request processing. The deadline reaches the handler's
// context, so a verification transaction still in flight rolls back instead
// of committing after the client was told 503. Writes the handler makes after
// the deadline are discarded.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &timeoutWriter{w: w, h: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				// Re-raise on the serving goroutine so Recovery sees it.
				panic(p)
			case <-done:
				// A handler that gave up on the deadline without writing still gets a 503.
				if ctx.Err() == nil || tw.started() {
					tw.flush()
					return
				}
				tw.timedOut(w)
			case <-ctx.Done():
				tw.timedOut(w)
			}
		})
	}
}

// timeoutWriter stages headers until the handler writes, then streams
// directly. After expire, every write fails with http.ErrHandlerTimeout.
type timeoutWriter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	h       http.Header
	wrote   bool
	expired bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired || tw.wrote {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wrote {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(b)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	dst := tw.w.Header()
	for k, v := range tw.h {
		dst[k] = v
	}
	tw.wrote = true
	tw.w.WriteHeader(code)
}

// flush sends staged headers for handlers that returned without writing.
func (tw *timeoutWriter) flush() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if !tw.wrote && !tw.expired {
		tw.writeHeaderLocked(http.StatusOK)
	}
}

// timedOut blocks further handler writes and answers 503 unless the
// response had already started.
func (tw *timeoutWriter) timedOut(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.expired = true
	if tw.wrote {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(`{"success":false,"message":"Request timeout"}`))
}

func (tw *timeoutWriter) started() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.wrote
}

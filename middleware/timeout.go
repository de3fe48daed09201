package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds each request to d. The handler runs against a buffered
// writer; if d elapses first the client gets 408 Request Timeout and later
// writes from the handler are dropped. The request context is cancelled at
// the deadline so store calls return early. Panics in the handler are
// re-raised on the serving goroutine for Recovery to handle.
func Timeout(d time.Duration) Middleware {
	return timeout(d, nil)
}

// beforeTimeout, when set, runs after the deadline fires and before the
// response is chosen. It receives the handler's completion channel.
func timeout(d time.Duration, beforeTimeout func(done <-chan struct{})) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			tw := &timeoutWriter{header: make(http.Header)}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.flushTo(w)
			case <-ctx.Done():
				if beforeTimeout != nil {
					beforeTimeout(done)
				}
				tw.mu.Lock()
				defer tw.mu.Unlock()

				// a handler that returned at the deadline keeps its response
				select {
				case p := <-panicked:
					panic(p)
				case <-done:
					tw.flushTo(w)
					return
				default:
				}

				tw.timedOut = true
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					http.Error(w, "Request timed out", http.StatusRequestTimeout)
				}
			}
		})
	}
}

type timeoutWriter struct {
	header http.Header
	buf    bytes.Buffer

	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
	code        int
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

// flushTo copies the buffered response to w. tw.mu must be held.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, vv := range tw.header {
		dst[k] = vv
	}
	if !tw.wroteHeader {
		tw.code = http.StatusOK
	}
	w.WriteHeader(tw.code)
	_, _ = w.Write(tw.buf.Bytes())
}

func (tw *timeoutWriter) Write(p []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.buf.Write(p)
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.code = code
}

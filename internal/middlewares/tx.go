package middlewares

import (
	"bytes"
	"context"
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// TxMiddleware runs each request inside one database transaction. The
// response is held back until the transaction ends: a status of 400 or more,
// or a panic, rolls back; anything else commits, and a failed commit turns the
// response into a 500.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				writeInternalError(w)
				return
			}

			state := &txState{tx: tx}
			bw := &bufferedResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			next.ServeHTTP(bw, r.WithContext(setTxToContext(r.Context(), state)))

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				writeInternalError(w)
				return
			}
			bw.flush()

			state.runHooks(context.WithoutCancel(r.Context()))
		})
	}
}

type txState struct {
	tx    *sqlx.Tx
	mu    sync.Mutex
	hooks []func(ctx context.Context)
}

func (s *txState) runHooks(ctx context.Context) {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx)
	}
}

// contextKey is an unexported type for keys in context.
type contextKey int

const (
	txKey contextKey = iota
	userIDKey
	tokenKey
	requestIDKey
)

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, state *txState) context.Context {
	return context.WithValue(ctx, txKey, state)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	state, _ := ctx.Value(txKey).(*txState)
	if state == nil {
		return nil
	}
	return state.tx
}

// WithoutTx returns ctx detached from the request transaction, so statements
// run on the pool in autocommit and cannot abort the request transaction.
func WithoutTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, (*txState)(nil))
}

// OnCommit schedules fn to run after the request transaction commits. It is
// dropped on rollback. Without a transaction in ctx, fn runs immediately.
func OnCommit(ctx context.Context, fn func(ctx context.Context)) {
	state, _ := ctx.Value(txKey).(*txState)
	if state == nil {
		fn(ctx)
		return
	}
	state.mu.Lock()
	state.hooks = append(state.hooks, fn)
	state.mu.Unlock()
}

// bufferedResponseWriter keeps status and body until flush.
type bufferedResponseWriter struct {
	http.ResponseWriter
	statusCode int
	buf        bytes.Buffer
}

func (bw *bufferedResponseWriter) WriteHeader(code int) {
	bw.statusCode = code
}

func (bw *bufferedResponseWriter) Write(b []byte) (int, error) {
	return bw.buf.Write(b)
}

func (bw *bufferedResponseWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.statusCode)
	if bw.buf.Len() > 0 {
		_, _ = bw.ResponseWriter.Write(bw.buf.Bytes())
	}
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
}

package middlewares

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxMiddleware_Success(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		assert.NotNil(t, GetTxFromContext(r.Context()))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	handler := TxMiddleware(sqlxDB)(next)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_ClientErrorRollsBack(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	hookCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		OnCommit(r.Context(), func(context.Context) { hookCalled = true })
		w.WriteHeader(http.StatusBadRequest)
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, hookCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_BeginError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	// Close db so Begin fails
	db.Close()

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTxMiddleware_CommitError(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	hookCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		OnCommit(r.Context(), func(context.Context) { hookCalled = true })
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), `"id"`)
	assert.False(t, hookCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_Panic(t *testing.T) {
	sqlxDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()

	assert.Panics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOnCommit(t *testing.T) {
	t.Run("runs after commit", func(t *testing.T) {
		sqlxDB, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		var order []string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			OnCommit(r.Context(), func(context.Context) { order = append(order, "first") })
			OnCommit(r.Context(), func(context.Context) { order = append(order, "second") })
			order = append(order, "handler")
		})

		handler := TxMiddleware(sqlxDB)(next)
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, []string{"handler", "first", "second"}, order)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs immediately without transaction", func(t *testing.T) {
		called := false
		OnCommit(context.Background(), func(context.Context) { called = true })
		assert.True(t, called)
	})
}

func TestGetTxFromContext_Empty(t *testing.T) {
	assert.Nil(t, GetTxFromContext(context.Background()))
}

func TestWithoutTx(t *testing.T) {
	ctx := setTxToContext(context.Background(), &txState{tx: &sqlx.Tx{}})
	require.NotNil(t, GetTxFromContext(ctx))

	detached := WithoutTx(ctx)
	assert.Nil(t, GetTxFromContext(detached))

	called := false
	OnCommit(detached, func(context.Context) { called = true })
	assert.True(t, called)
}

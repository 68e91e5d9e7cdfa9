package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRecorder(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantSize   int
		wantBody   string
	}{
		{
			name:       "nothing written",
			write:      func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit status",
			write:      func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "implicit 200 on write",
			write: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("hello"))
				_, _ = w.Write([]byte(", vault"))
			},
			wantStatus: http.StatusOK,
			wantSize:   12,
			wantBody:   "hello, vault",
		},
		{
			name: "second WriteHeader ignored",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{}`))
			},
			wantStatus: http.StatusCreated,
			wantSize:   2,
			wantBody:   `{}`,
		},
		{
			name: "http.Error",
			write: func(w http.ResponseWriter) {
				http.Error(w, "not found", http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantSize:   len("not found\n"),
			wantBody:   "not found\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			rec := &accessRecorder{ResponseWriter: rr}

			tt.write(rec)

			assert.Equal(t, tt.wantStatus, rec.Status())
			assert.Equal(t, tt.wantSize, rec.size)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestAccessRecorder_Flush(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &accessRecorder{ResponseWriter: rr}

	rec.Flush()

	assert.True(t, rr.Flushed)
	assert.Equal(t, http.StatusOK, rec.Status())
}

func TestAccessRecorder_ResponseController(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &accessRecorder{ResponseWriter: rr}

	rc := http.NewResponseController(rec)

	require.NoError(t, rc.Flush())
	assert.True(t, rr.Flushed)
	assert.ErrorIs(t, rc.SetWriteDeadline(time.Now()), http.ErrNotSupported)
}

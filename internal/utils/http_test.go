package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	type item struct {
		Title string   `json:"title"`
		URL   string   `json:"url,omitempty"`
		Tags  []string `json:"tags"`
	}

	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "struct", data: item{Title: "mail", Tags: []string{"work"}}, status: http.StatusOK, wantBody: `{"title":"mail","tags":["work"]}`},
		{name: "created", data: map[string]string{"id": "1"}, status: http.StatusCreated, wantBody: `{"id":"1"}`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: `null`},
		{name: "empty struct", data: struct{}{}, status: http.StatusOK, wantBody: `{}`},
		{name: "slice", data: []int{1, 2, 3}, status: http.StatusOK, wantBody: `[1,2,3]`},
		{name: "html is not escaped", data: item{Title: "a&b", URL: "https://x.io/?a=1&b=<2>"}, status: http.StatusOK, wantBody: `{"title":"a&b","url":"https://x.io/?a=1&b=<2>","tags":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Empty(t, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWritePrivateJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WritePrivateJSON(rec, map[string]string{"password": "v2.abc"}, http.StatusOK)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	assert.JSONEq(t, `{"password":"v2.abc"}`, rec.Body.String())
}

package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuthUser(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	// no Authorization header at all
	status, header, _ := ts.get(t, "/blogs", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Bearer", header.Get("WWW-Authenticate"))

	// garbage bearer token
	token := "not.a.real.token"
	status, _, _ = ts.get(t, "/blogs", &token)
	assert.Equal(t, http.StatusUnauthorized, status)

	// a real token passes through
	_, realToken := ts.signupAndLogin(t, "middleware_user", "password123")
	status, _, body := ts.get(t, "/blogs", &realToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "blogs")
}

func TestExtractTokenFromHeader(t *testing.T) {
	app := &application{}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well formed", header: "Bearer abc123", want: "abc123"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "missing token", header: "Bearer", want: ""},
		{name: "extra parts", header: "Bearer abc 123", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.extractTokenFromHeader(tt.header))
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := &application{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	app.recoverPanic(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "close", rr.Header().Get("Connection"))
}

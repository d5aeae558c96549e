package router

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(body string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMatchWildcardRoute(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/v1/exports/abc", "/api/v1/exports/*", true},
		{"/api/v1/exports/abc/logs", "/api/v1/exports/*/logs", true},
		{"/api/v1/exports/abc/logs", "/api/v1/exports/*/errors", false},
		{"/api/v1/exports/abc/logs", "/api/v1/exports/*", true}, // trailing wildcard takes the rest
		{"/api/v1/exports/", "/api/v1/exports/*", false},
		{"/api/v1/exports//logs", "/api/v1/exports/*/logs", false},
		{"/swagger/index.html", "/swagger/*", true},
		{"/swagger/a/b", "/swagger/*", true},
		{"/swagger", "/swagger/*", false},
		{"/files/a/b", "/files/*/*", true},
		{"/files/a/b/c", "/files/*/*", true},
		{"/files//b", "/files/*/*", false},
		{"/files/a", "/files/*/*", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, matchWildcardRoute(tt.path, tt.pattern))
		})
	}
}

func TestRouter_Dispatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/exports", reply("list"))
	r.POST("/api/v1/exports", reply("create"))
	r.GET("/api/v1/exports/*/logs", reply("logs"))
	r.GET("/api/v1/exports/*", reply("get"))

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/api/v1/exports", http.StatusOK, "list"},
		{http.MethodPost, "/api/v1/exports", http.StatusOK, "create"},
		{http.MethodGet, "/api/v1/exports/42", http.StatusOK, "get"},
		{http.MethodGet, "/api/v1/exports/42/logs", http.StatusOK, "logs"},
		{http.MethodDelete, "/api/v1/exports", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/api/v1/exports/42", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/api/v1/exports/42/other", http.StatusOK, "get"},
		{http.MethodGet, "/api/v2/exports", http.StatusNotFound, ""},
		{http.MethodGet, "/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(t, r, tt.method, tt.path)
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRouter_FirstRegisteredWildcardWins(t *testing.T) {
	r := New()
	r.GET("/files/*/meta", reply("meta"))
	r.GET("/files/*/*", reply("any"))

	for i := 0; i < 20; i++ {
		assert.Equal(t, "meta", do(t, r, http.MethodGet, "/files/a/meta").Body.String())
	}
	assert.Equal(t, "any", do(t, r, http.MethodGet, "/files/a/b").Body.String())
	assert.Equal(t, "any", do(t, r, http.MethodGet, "/files/a/b/c").Body.String())
}

func TestRouter_Mount(t *testing.T) {
	r := New()
	r.Mount("/static/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		io.WriteString(w, "static:"+req.URL.Path)
	}))
	r.GET("/api", reply("api"))

	assert.Equal(t, "static:/static/app.js", do(t, r, http.MethodGet, "/static/app.js").Body.String())
	assert.Equal(t, "api", do(t, r, http.MethodGet, "/api").Body.String())
}

func TestRouter_Getters(t *testing.T) {
	r := New()
	r.GET("/a", reply("a"))
	r.PUT("/a", reply("a"))
	r.PATCH("/b/*", reply("b"))
	r.DELETE("/b/*", reply("b"))

	assert.Len(t, r.Routes(), 4)
	assert.Equal(t, map[string]bool{"/a": true, "/b/*": true}, r.Paths())
	assert.Equal(t, []string{"/b/*"}, r.patterns)
}

func TestRouter_Run(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	r := New()
	r.GET("/ping", reply("pong"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, addr) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr + "/ping")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

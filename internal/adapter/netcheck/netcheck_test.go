package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	assert.True(t, Online(context.Background(), srv.URL+"/fdsnws/event/1/query", time.Second))
}

func TestOnline_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	assert.False(t, Online(context.Background(), addr, time.Second))
}

func TestOnline_BadURL(t *testing.T) {
	assert.False(t, Online(context.Background(), "not a url", time.Second))
	assert.False(t, Online(context.Background(), "http://[::1", time.Second))
}

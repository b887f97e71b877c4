// Package netcheck answers whether the feed host is reachable before the
// event store is activated.
package netcheck

import (
	"context"
	"net"
	"net/url"
	"time"
)

// Online reports whether a TCP connection to the host of rawURL can be
// opened within timeout.
func Online(ctx context.Context, rawURL string, timeout time.Duration) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	port := u.Port()
	if port == "" {
		port = "443"
		if u.Scheme == "http" {
			port = "80"
		}
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(u.Hostname(), port))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

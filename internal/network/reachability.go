// Package network answers whether the weather endpoint can be reached at all.
package network

import (
	"context"
	"errors"
	"net"
	"time"
)

var ErrNetworkUnreachable = errors.New("network unreachable")

// Checker is consulted before any weather request is issued.
type Checker interface {
	Reachable(ctx context.Context) bool
}

// DialChecker treats a successful TCP connect to Addr as reachability.
type DialChecker struct {
	Addr    string
	Timeout time.Duration
}

func NewDialChecker(addr string, timeout time.Duration) *DialChecker {
	return &DialChecker{Addr: addr, Timeout: timeout}
}

func (c *DialChecker) Reachable(ctx context.Context) bool {
	d := net.Dialer{Timeout: c.Timeout}
	conn, err := d.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) bool

func (f CheckerFunc) Reachable(ctx context.Context) bool { return f(ctx) }

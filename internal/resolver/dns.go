// Package resolver answers boolean DNS presence questions for candidate
// domains. Lookup failures of any kind count as absence; nothing here ever
// returns an error to the caller.
package resolver

import (
	"context"
	"net"
	"time"
)

const defaultTimeout = 10 * time.Second

// Resolver wraps net.Resolver with per-lookup timeouts.
type Resolver struct {
	timeout  time.Duration
	resolver *net.Resolver
}

// New builds a resolver. A non-positive timeout falls back to 10s.
func New(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{
		timeout: timeout,
		resolver: &net.Resolver{
			PreferGo: true,
		},
	}
}

// HasMX reports whether the domain publishes MX records, i.e. can receive
// email.
func (r *Resolver) HasMX(ctx context.Context, domain string) bool {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.resolver.LookupMX(lookupCtx, domain)
	return err == nil && len(records) > 0
}

// HasA reports whether the domain resolves to at least one address.
func (r *Resolver) HasA(ctx context.Context, domain string) bool {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.resolver.LookupHost(lookupCtx, domain)
	return err == nil && len(addrs) > 0
}

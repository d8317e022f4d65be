// Package lookup queries the registration and threat-list services a trust
// assessment is built from.
package lookup

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"safyscore/trust"
)

// ErrMissingAPIKey is returned by services that cannot be called without a key.
var ErrMissingAPIKey = errors.New("lookup: api key missing")

// ErrNoRecord means the service answered but had nothing usable for the domain.
var ErrNoRecord = errors.New("lookup: no registration record")

// Registrations returns domain registration metadata for a host.
type Registrations interface {
	LookupRegistration(ctx context.Context, host string) (*trust.Registration, error)
}

// Threats reports whether a URL is on a threat list.
type Threats interface {
	LookupThreats(ctx context.Context, rawURL string) (*trust.ThreatList, error)
}

// Result holds both lookup outcomes. Either field is nil when its lookup failed.
type Result struct {
	Registration *trust.Registration
	Threats      *trust.ThreatList
}

// Client fans a URL out to both services and joins the answers.
type Client struct {
	registrations Registrations
	threats       Threats
}

// New returns a Client. A nil service is treated as always failing.
func New(registrations Registrations, threats Threats) *Client {
	return &Client{registrations: registrations, threats: threats}
}

// Lookup runs both lookups concurrently and waits for both to settle.
// Failures are logged and degrade to a nil field; they never stop the other lookup.
func (c *Client) Lookup(ctx context.Context, target *url.URL) Result {
	var res Result
	host := Domain(target)

	var g errgroup.Group

	g.Go(func() error {
		defer recoverLookup("registration", host)
		if c.registrations == nil {
			return nil
		}
		reg, err := c.registrations.LookupRegistration(ctx, host)
		if err != nil {
			log.Printf("[Lookup] registration lookup failed for %s: %v", host, err)
			return nil
		}
		res.Registration = reg
		return nil
	})

	g.Go(func() error {
		defer recoverLookup("threat-list", host)
		if c.threats == nil {
			return nil
		}
		th, err := c.threats.LookupThreats(ctx, target.String())
		if err != nil {
			log.Printf("[Lookup] threat-list lookup failed for %s: %v", target, err)
			return nil
		}
		res.Threats = th
		return nil
	})

	_ = g.Wait()

	return res
}

// recoverLookup turns a panicking service into a failed lookup.
func recoverLookup(kind, host string) {
	if r := recover(); r != nil {
		log.Printf("[Lookup] %s lookup panicked for %s: %v", kind, host, r)
	}
}

// Domain returns the lower-cased host of u without a leading "www.".
func Domain(u *url.URL) string {
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	return strings.TrimPrefix(host, "www.")
}

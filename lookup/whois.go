package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"safyscore/trust"
)

// Registrant names and organisations that mean the real owner is hidden.
var privacyMarkers = []string{
	"privacy",
	"redacted",
	"proxy",
	"withheld",
	"whoisguard",
	"not disclosed",
	"data protected",
}

// WHOIS looks registrations up over port-43 WHOIS. It needs no API key and is
// used when the WHOIS XML API is not configured.
type WHOIS struct {
	query func(domain string) (string, error)
}

// NewWHOIS returns a port-43 WHOIS client with the given per-query timeout.
func NewWHOIS(timeout time.Duration) *WHOIS {
	c := whois.NewClient().SetTimeout(timeout)
	return &WHOIS{query: func(domain string) (string, error) {
		return c.Whois(domain)
	}}
}

func (w *WHOIS) LookupRegistration(ctx context.Context, host string) (*trust.Registration, error) {
	domain := host
	for {
		info, err := w.parse(ctx, domain)
		if err == nil {
			return registrationFromWhois(info), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// For subdomains, try the parent domain (a.b.example.com -> b.example.com)
		parts := strings.Split(domain, ".")
		if len(parts) <= 2 {
			return nil, err
		}
		domain = strings.Join(parts[1:], ".")
	}
}

func (w *WHOIS) parse(ctx context.Context, domain string) (whoisparser.WhoisInfo, error) {
	type answer struct {
		raw string
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		raw, err := w.query(domain)
		ch <- answer{raw: raw, err: err}
	}()

	var a answer
	select {
	case <-ctx.Done():
		return whoisparser.WhoisInfo{}, ctx.Err()
	case a = <-ch:
	}
	if a.err != nil {
		return whoisparser.WhoisInfo{}, fmt.Errorf("whois %s: %w", domain, a.err)
	}

	info, err := whoisparser.Parse(a.raw)
	if err != nil {
		return whoisparser.WhoisInfo{}, fmt.Errorf("whois parse %s: %w", domain, err)
	}
	if info.Domain == nil {
		return whoisparser.WhoisInfo{}, ErrNoRecord
	}
	return info, nil
}

func registrationFromWhois(info whoisparser.WhoisInfo) *trust.Registration {
	reg := &trust.Registration{
		CreatedAt: parseDate(info.Domain.CreatedDate),
	}
	if info.Registrar != nil {
		reg.Registrar = strings.TrimSpace(info.Registrar.Name)
	}
	if c := info.Registrant; c != nil {
		reg.Privacy = isPrivacyShielded(c.Name, c.Organization, c.Email)
	}
	return reg
}

func isPrivacyShielded(fields ...string) bool {
	for _, f := range fields {
		f = strings.ToLower(f)
		for _, m := range privacyMarkers {
			if strings.Contains(f, m) {
				return true
			}
		}
	}
	return false
}

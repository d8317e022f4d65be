package vetting

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"safyscore/config"
	"safyscore/lookup"
	"safyscore/trust"
)

// Lookuper fetches both lookup results for a URL.
type Lookuper interface {
	Lookup(ctx context.Context, target *url.URL) lookup.Result
}

// Report is the outcome of one evaluation, ready for presentation.
type Report struct {
	ID           string              `json:"id"`
	URL          string              `json:"url"`
	Host         string              `json:"host"`
	Registration *trust.Registration `json:"registration"`
	Threats      *trust.ThreatList   `json:"threats"`
	Assessment   trust.Assessment    `json:"assessment"`
	Timestamp    string              `json:"timestamp"`
}

// Assessor runs the lookup -> score flow for a single URL.
type Assessor struct {
	lookups Lookuper
	now     func() time.Time
}

// NewAssessor returns an Assessor that scores against the wall clock.
func NewAssessor(lookups Lookuper) *Assessor {
	return &Assessor{lookups: lookups, now: time.Now}
}

// NewAssessorFromConfig wires the lookup services named in cfg. The WHOIS XML
// API is used when a key is configured, port-43 WHOIS otherwise.
func NewAssessorFromConfig(cfg config.Config) *Assessor {
	var registrations lookup.Registrations
	if cfg.WhoisAPIKey != "" {
		registrations = lookup.NewWhoisXML(cfg.WhoisAPIKey, cfg.LookupTimeout)
	} else {
		log.Println("[Assess] WHOIS_API_KEY not set, using port-43 WHOIS")
		registrations = lookup.NewWHOIS(cfg.WhoisTimeout)
	}

	if cfg.SafeBrowsingAPIKey == "" {
		log.Println("[Assess] GOOGLE_SAFE_BROWSING_KEY not set, threat-list lookups will be skipped")
	}
	threats := lookup.NewSafeBrowsing(cfg.SafeBrowsingAPIKey, cfg.LookupTimeout)

	return NewAssessor(lookup.New(registrations, threats))
}

// Assess validates raw, looks it up and scores it. The only error is
// ErrInvalidURL, returned before any lookup is issued. Lookup failures degrade
// to missing data and a panic during evaluation yields the unanalyzable verdict.
func (a *Assessor) Assess(ctx context.Context, raw string) (*Report, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return nil, err
	}

	now := a.now()
	report := &Report{
		ID:        uuid.NewString(),
		URL:       target.String(),
		Host:      target.Hostname(),
		Timestamp: now.Format(time.RFC3339),
	}
	a.evaluate(ctx, target, now, report)

	log.Printf("[Assess] %s graded %s (%s) id=%s", report.Host, report.Assessment.Grade, report.Assessment.Rationale, report.ID)
	return report, nil
}

func (a *Assessor) evaluate(ctx context.Context, target *url.URL, now time.Time, report *Report) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Assess] evaluation of %s panicked: %v", target, r)
			report.Assessment = trust.Unanalyzable()
		}
	}()

	res := a.lookups.Lookup(ctx, target)
	report.Registration = res.Registration
	report.Threats = res.Threats
	report.Assessment = trust.Score(res.Registration, res.Threats, now)
}

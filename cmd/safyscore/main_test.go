package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"safyscore/trust"
	"safyscore/vetting"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-u", "https://example.com", "-json", "-timeout", "5s"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.url != "https://example.com" || !opts.json || opts.timeout != 5*time.Second {
		t.Fatalf("unexpected options: %+v", opts)
	}

	if _, err := parseFlags([]string{"-bogus"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestResolveTarget(t *testing.T) {
	raw, err := resolveTarget(context.Background(), options{url: "https://example.com"})
	if err != nil || raw != "https://example.com" {
		t.Fatalf("resolveTarget = %q, %v", raw, err)
	}

	if _, err := resolveTarget(context.Background(), options{}); err == nil {
		t.Fatal("expected an error without -u or -cdp")
	}
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	report := &vetting.Report{
		Host: "shady.example",
		Registration: &trust.Registration{
			CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Privacy:   true,
		},
		Threats: &trust.ThreatList{
			HasMatches: true,
			Matches:    []trust.ThreatMatch{{ThreatType: "MALWARE"}, {ThreatType: "SOCIAL_ENGINEERING"}},
		},
		Assessment: trust.Assessment{Grade: trust.GradeD, Rationale: trust.ReasonThreatListed},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"[D]  shady.example",
		trust.ReasonThreatListed,
		"Dangerous site",
		"Very Risky",
		"Created on: 01/02/2026",
		"Registrar: Unknown",
		"Privacy service: Yes",
		"The site is classified as dangerous: MALWARE, SOCIAL_ENGINEERING",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

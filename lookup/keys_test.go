package lookup

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"
)

// Not parallel: it swaps the global log output.
func TestLookupFailuresDoNotLogAPIKeys(t *testing.T) {
	const (
		whoisKey = "wx-key-0123456789"
		sbKey    = "sb-key-0123456789"
		deadAddr = "http://127.0.0.1:1"
	)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	wx := NewWhoisXML(whoisKey, time.Second)
	wx.BaseURL = deadAddr + "/whois"
	sb := NewSafeBrowsing(sbKey, time.Second)
	sb.BaseURL = deadAddr + "/v4/threatMatches:find"

	res := New(wx, sb).Lookup(context.Background(), mustParse(t, "https://example.com/"))
	if res.Registration != nil || res.Threats != nil {
		t.Fatalf("expected both lookups to fail, got %+v", res)
	}

	out := buf.String()
	if !strings.Contains(out, "registration lookup failed") || !strings.Contains(out, "threat-list lookup failed") {
		t.Fatalf("expected both failures to be logged:\n%s", out)
	}
	for _, key := range []string{whoisKey, sbKey} {
		if strings.Contains(out, key) {
			t.Fatalf("log contains api key %q:\n%s", key, out)
		}
	}
	if !strings.Contains(out, "apiKey=REDACTED") {
		t.Fatalf("expected redacted whoisxml url in log:\n%s", out)
	}
}

func TestRedactKey(t *testing.T) {
	t.Parallel()

	wx := NewWhoisXML("wx-secret", 200*time.Millisecond)
	wx.BaseURL = "http://127.0.0.1:1/whois"

	_, err := wx.LookupRegistration(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if strings.Contains(err.Error(), "wx-secret") {
		t.Fatalf("error leaks api key: %v", err)
	}
	if !strings.Contains(err.Error(), "domainName=example.com") {
		t.Fatalf("redaction dropped the rest of the query: %v", err)
	}
}

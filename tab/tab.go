// Package tab finds the URL of the browser tab being assessed.
package tab

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// ErrNoActiveTab is returned when no assessable tab could be found.
var ErrNoActiveTab = errors.New("tab: no active tab")

// Source yields the URL of the currently active tab.
type Source interface {
	ActiveURL(ctx context.Context) (string, error)
}

// Static is a Source that always returns the same URL.
type Static string

func (s Static) ActiveURL(ctx context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoActiveTab
	}
	return string(s), nil
}

// Browser reads the active tab from a running Chrome started with
// --remote-debugging-port. DebugURL is the DevTools endpoint, for example
// http://127.0.0.1:9222 or a ws://.../devtools/browser/<id> URL.
type Browser struct {
	DebugURL string
}

func (b Browser) ActiveURL(ctx context.Context) (string, error) {
	if b.DebugURL == "" {
		return "", ErrNoActiveTab
	}

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, b.DebugURL)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// Targets only connects to the browser; no tab is opened or attached.
	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return "", fmt.Errorf("list chrome targets: %w", err)
	}
	log.Printf("[Tab] %d targets reported by %s", len(targets), b.DebugURL)

	return pickActive(targets)
}

// pickActive returns the first http(s) page target in the order DevTools
// reports them. The order is not documented; in practice Chrome lists the
// most recently focused tab first, so this is a best guess at the active tab.
func pickActive(targets []*target.Info) (string, error) {
	for _, t := range targets {
		if t == nil || t.Type != "page" {
			continue
		}
		if strings.HasPrefix(t.URL, "http://") || strings.HasPrefix(t.URL, "https://") {
			return t.URL, nil
		}
	}
	return "", ErrNoActiveTab
}

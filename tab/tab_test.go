package tab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/cdproto/target"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	got, err := Static("https://example.com").ActiveURL(context.Background())
	if err != nil || got != "https://example.com" {
		t.Fatalf("ActiveURL() = %q, %v", got, err)
	}

	if _, err := Static("  ").ActiveURL(context.Background()); !errors.Is(err, ErrNoActiveTab) {
		t.Fatalf("err = %v, want ErrNoActiveTab", err)
	}
}

func TestBrowserWithoutEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := (Browser{}).ActiveURL(context.Background()); !errors.Is(err, ErrNoActiveTab) {
		t.Fatalf("err = %v, want ErrNoActiveTab", err)
	}
}

func TestBrowserUnreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Browser{DebugURL: "ws://127.0.0.1:1/devtools/browser/none"}.ActiveURL(ctx)
	if err == nil || errors.Is(err, ErrNoActiveTab) {
		t.Fatalf("err = %v, want a connection error", err)
	}
}

func TestPickActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		targets []*target.Info
		want    string
		wantErr bool
	}{
		{
			name: "first http page wins",
			targets: []*target.Info{
				{Type: "service_worker", URL: "https://sw.example.com/sw.js"},
				{Type: "page", URL: "chrome://newtab/"},
				{Type: "page", URL: "https://news.example.com/story"},
				{Type: "page", URL: "https://other.example.com/"},
			},
			want: "https://news.example.com/story",
		},
		{
			name: "reported order is kept",
			targets: []*target.Info{
				{Type: "page", URL: "https://b.example.com/"},
				{Type: "page", URL: "https://a.example.com/"},
			},
			want: "https://b.example.com/",
		},
		{
			name:    "only internal pages",
			targets: []*target.Info{{Type: "page", URL: "chrome://settings/"}, nil},
			wantErr: true,
		},
		{
			name:    "no targets",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := pickActive(tt.targets)
			if tt.wantErr {
				if !errors.Is(err, ErrNoActiveTab) {
					t.Fatalf("err = %v, want ErrNoActiveTab", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("pickActive() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

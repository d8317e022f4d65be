// Command safyscore grades a single URL, or the active tab of a Chrome
// instance, from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"safyscore/config"
	"safyscore/tab"
	"safyscore/vetting"
)

const (
	exitOK = iota
	exitError
	exitUsage
)

type options struct {
	url      string
	cdp      string
	json     bool
	noBanner bool
	timeout  time.Duration
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("safyscore", flag.ContinueOnError)
	fs.StringVar(&opts.url, "u", "", "URL to assess")
	fs.StringVar(&opts.cdp, "cdp", "", "Chrome DevTools endpoint; assess the active tab when -u is empty")
	fs.BoolVar(&opts.json, "json", false, "Print the report as JSON")
	fs.BoolVar(&opts.noBanner, "no-banner", false, "Do not print the banner")
	fs.DurationVar(&opts.timeout, "timeout", 20*time.Second, "Overall timeout")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(exitUsage)
	}
	os.Exit(run(opts))
}

func run(opts options) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Config error: %v\n", err)
		return exitError
	}
	if opts.cdp == "" {
		opts.cdp = cfg.ChromeDebugURL
	}

	if !opts.json && !opts.noBanner {
		printBanner()
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	raw, err := resolveTarget(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		return exitUsage
	}

	report, err := vetting.NewAssessorFromConfig(cfg).Assess(ctx, raw)
	if errors.Is(err, vetting.ErrInvalidURL) {
		fmt.Fprintf(os.Stderr, "[-] Cannot assess %q: invalid URL\n", raw)
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[-] Assessment failed: %v\n", err)
		return exitError
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "[-] Encode error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	printReport(os.Stdout, report)
	return exitOK
}

// resolveTarget prefers -u and falls back to the browser's active tab.
func resolveTarget(ctx context.Context, opts options) (string, error) {
	if opts.url != "" {
		return opts.url, nil
	}
	if opts.cdp == "" {
		return "", errors.New("-u (URL) or -cdp (DevTools endpoint) is required")
	}
	raw, err := tab.Browser{DebugURL: opts.cdp}.ActiveURL(ctx)
	if err != nil {
		return "", fmt.Errorf("active tab: %w", err)
	}
	return raw, nil
}

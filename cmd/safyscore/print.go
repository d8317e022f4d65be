package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"

	"safyscore/trust"
	"safyscore/vetting"
)

func printBanner() {
	figure.NewColorFigure("SAFYSCORE", "doom", "green", true).Print()

	cyan := color.New(color.FgCyan)
	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = cyan.Println("    Site trust grades from WHOIS and threat lists")
	_, _ = cyan.Println("════════════════════════════════════════════════")
}

func gradeColor(g trust.Grade) *color.Color {
	switch g {
	case trust.GradeA:
		return color.New(color.FgGreen, color.Bold)
	case trust.GradeB:
		return color.New(color.FgCyan, color.Bold)
	case trust.GradeC:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printReport(w io.Writer, r *vetting.Report) {
	g := r.Assessment.Grade
	exp := vetting.ExplanationFor(g)

	fmt.Fprintf(w, "%s  %s\n", gradeColor(g).Sprintf("[%s]", g), r.Host)
	fmt.Fprintf(w, "    %s\n", r.Assessment.Rationale)
	for _, h := range vetting.HighlightsFor(g) {
		fmt.Fprintf(w, "    %s %s\n", h.Icon, h.Text)
	}

	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold).Sprint(exp.Title))
	for _, p := range exp.Paragraphs {
		fmt.Fprintf(w, "  %s\n", p)
	}

	if reg := r.Registration; reg != nil {
		created := "Unknown"
		if !reg.CreatedAt.IsZero() {
			created = reg.CreatedAt.Format("02/01/2006")
		}
		registrar := reg.Registrar
		if registrar == "" {
			registrar = "Unknown"
		}
		privacy := "No"
		if reg.Privacy {
			privacy = "Yes"
		}
		fmt.Fprintf(w, "\nRegistration\n  Created on: %s\n  Registrar: %s\n  Privacy service: %s\n", created, registrar, privacy)
	}

	if t := r.Threats; t != nil {
		fmt.Fprintln(w, "\nThreat list")
		if !t.HasMatches {
			fmt.Fprintln(w, "  The site seems safe")
		} else {
			types := make([]string, 0, len(t.Matches))
			for _, m := range t.Matches {
				types = append(types, m.ThreatType)
			}
			fmt.Fprintf(w, "  %s %s\n", color.RedString("The site is classified as dangerous:"), strings.Join(types, ", "))
		}
	}
}

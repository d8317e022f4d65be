package vetting

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"

	"safyscore/trust"
)

//go:embed templates/*.html
var templateFS embed.FS

type views struct {
	templates *template.Template
}

func loadViews() *views {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).ParseFS(templateFS, "templates/*.html"))
	return &views{templates: tmpl}
}

// page is the data both views render from.
type page struct {
	URL         string
	Host        string
	Invalid     bool
	Report      *Report
	Grade       trust.Grade
	Highlights  []Highlight
	Explanation Explanation
	CreatedOn   string
	Registrar   string
	Privacy     bool
	PopupLink   string
	DetailsLink string
}

func invalidPage(raw string) page {
	return page{URL: raw, Invalid: true}
}

func reportPage(r *Report) page {
	p := page{
		URL:         r.URL,
		Host:        r.Host,
		Report:      r,
		Grade:       r.Assessment.Grade,
		Highlights:  HighlightsFor(r.Assessment.Grade),
		Explanation: ExplanationFor(r.Assessment.Grade),
		CreatedOn:   "Unknown",
		Registrar:   "Unknown",
		PopupLink:   popupLink(r.URL),
		DetailsLink: detailsLink(r.URL),
	}
	if reg := r.Registration; reg != nil {
		if !reg.CreatedAt.IsZero() {
			p.CreatedOn = reg.CreatedAt.Format("02/01/2006")
		}
		if reg.Registrar != "" {
			p.Registrar = reg.Registrar
		}
		p.Privacy = reg.Privacy
	}
	return p
}

// render executes into a buffer first so a template error never sends a half page.
func (v *views) render(w http.ResponseWriter, status int, name string, data page) {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[Views] render %s: %v", name, err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

package vetting

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"safyscore/tab"
)

// AssessRequest is the body of POST /api/v1/assess.
type AssessRequest struct {
	URL string `json:"url"`
}

// Response wraps API responses
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorMsg   `json:"error,omitempty"`
}

// ErrorMsg represents an error response
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler serves the compact view, the detail view and the JSON API.
type Handler struct {
	assessor *Assessor
	tabs     tab.Source
	views    *views
}

// NewHandler returns a Handler. tabs may be nil when no browser is attached.
func NewHandler(assessor *Assessor, tabs tab.Source) *Handler {
	return &Handler{assessor: assessor, tabs: tabs, views: loadViews()}
}

// Router creates the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.active)
	r.Get("/popup", h.popup)
	r.Get("/details", h.details)
	r.Get("/healthz", h.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Post("/assess", h.assess)
	})

	return r
}

// active resolves the browser's active tab and sends it to the compact view.
func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	if h.tabs == nil {
		h.views.render(w, http.StatusBadRequest, "popup.html", invalidPage(""))
		return
	}

	raw, err := h.tabs.ActiveURL(r.Context())
	if err != nil {
		log.Printf("[Views] no active tab: %v", err)
		h.views.render(w, http.StatusBadRequest, "popup.html", invalidPage(""))
		return
	}

	http.Redirect(w, r, popupLink(raw), http.StatusFound)
}

func (h *Handler) popup(w http.ResponseWriter, r *http.Request) {
	h.renderReport(w, r, "popup.html")
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	h.renderReport(w, r, "details.html")
}

func (h *Handler) renderReport(w http.ResponseWriter, r *http.Request, name string) {
	raw := r.URL.Query().Get("url")

	report, err := h.assessor.Assess(r.Context(), raw)
	if err != nil {
		log.Printf("[Views] cannot assess %q: %v", raw, err)
		h.views.render(w, http.StatusBadRequest, name, invalidPage(raw))
		return
	}

	h.views.render(w, http.StatusOK, name, reportPage(report))
}

// assess handles POST /api/v1/assess
func (h *Handler) assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}

	report, err := h.assessor.Assess(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, ErrInvalidURL) {
			respondError(w, http.StatusBadRequest, "invalid_url", "url must be an absolute http(s) URL")
			return
		}
		respondError(w, http.StatusInternalServerError, "assess_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Data: report})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, Response{Data: map[string]string{"status": "ok"}})
}

func popupLink(raw string) string {
	return "/popup?url=" + url.QueryEscape(raw)
}

func detailsLink(raw string) string {
	return "/details?url=" + url.QueryEscape(raw)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, Response{
		Error: &ErrorMsg{
			Code:    code,
			Message: message,
		},
	})
}

// corsMiddleware lets the browser extension call the API from its own origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

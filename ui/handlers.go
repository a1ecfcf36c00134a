package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"handlestats/internal/report"
	"handlestats/internal/session"
)

type pageData struct {
	Title  string
	State  session.State
	Source string
	Error  string
	Body   template.HTML
}

// statusCode maps a session state to the HTTP status of result-bearing routes
func statusCode(state session.State) int {
	switch state {
	case session.StateReady:
		return http.StatusOK
	case session.StateError:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := a.source.Snapshot()
	data := pageData{
		Title:  report.Title,
		State:  snap.State,
		Source: snap.Source,
		Error:  snap.Error,
	}
	if snap.State == session.StateReady {
		// report.HTML escapes every survey-supplied string before rendering
		data.Body = template.HTML(report.HTML(snap.Result))
	}
	a.renderTemplate(w, statusCode(snap.State), "index.html", data)
}

func (a *App) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	snap := a.source.Snapshot()
	if snap.State != session.StateReady {
		http.Error(w, string(snap.State), statusCode(snap.State))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if _, err := w.Write(report.Markdown(snap.Result)); err != nil {
		log.Printf("[UI] Error writing markdown response: %v", err)
	}
}

func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.source.Snapshot())
}

func (a *App) handleResult(w http.ResponseWriter, r *http.Request) {
	snap := a.source.Snapshot()
	if snap.State != session.StateReady {
		writeJSON(w, statusCode(snap.State), snap)
		return
	}
	writeJSON(w, http.StatusOK, snap.Result)
}

// renderTemplate renders into a buffer first so template errors never produce a partial page
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[UI] Template error for %s: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[UI] Error writing template response: %v", err)
	}
}

// writeJSON encodes v before touching the response so an encoding failure
// can still answer 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("[UI] Error encoding JSON response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[UI] Error writing JSON response: %v", err)
	}
}

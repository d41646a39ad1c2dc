package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

func writeResponse(w http.ResponseWriter, res Response) {
	header := w.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("Access-Control-Allow-Origin", "*")
	if res.CacheControl != "" {
		header.Set("Cache-Control", res.CacheControl)
	}
	w.WriteHeader(res.Status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(res.Body)
	if err != nil {
		slog.Warn("write response", "err", err)
	}
}

var getRoutes = []string{
	"/api/get-company-list",
	"/api/get-company-details",
	"/healthz",
}

// unmatched answers everything the routes below do not, in the same envelope.
func unmatched(w http.ResponseWriter, r *http.Request) {
	for _, route := range getRoutes {
		if r.URL.Path != route {
			continue
		}
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead}, ", "))
		writeResponse(w, failure(http.StatusMethodNotAllowed, "", "Method not allowed: "+r.Method))
		return
	}
	writeResponse(w, failure(http.StatusNotFound, "", "Not found: "+r.URL.Path))
}

// Handler routes the public endpoints to s. Only GET (and HEAD) is accepted.
func (s Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", unmatched)
	mux.HandleFunc("GET /api/get-company-list", func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, s.GetCompanyList(r.Context(), ListRequest{
			Page: r.URL.Query().Get("page"),
		}))
	})
	mux.HandleFunc("GET /api/get-company-details", func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, s.GetCompanyDetails(r.Context(), DetailsRequest{
			Url: r.URL.Query().Get("url"),
		}))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	return mux
}

// Package web exposes report generation over HTTP: a minimal form for
// browsers plus a small JSON API. Rendering runs in a background
// goroutine per request; the client polls the job id until the PDF is
// ready.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goreport/internal/jobstore"
	"github.com/hyperifyio/goreport/internal/report"
)

// Builder renders a finished PDF for a topic. The app layer provides
// the real implementation; tests substitute a fake.
type Builder func(ctx context.Context, topic string, pages int, style report.Style) ([]byte, error)

// Server wires the HTTP surface to a job store and a report builder.
type Server struct {
	Store *jobstore.Store
	Build Builder
	// RenderTimeout bounds one background render; zero means 5 minutes.
	RenderTimeout time.Duration
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/reports", s.handleCreate)
	mux.HandleFunc("GET /api/reports/{id}", s.handleGet)
	return logRequests(mux)
}

type createRequest struct {
	Topic string `json:"topic"`
	Pages int    `json:"pages"`
	Style string `json:"style"`
}

type createResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		httpError(w, http.StatusBadRequest, "topic is required")
		return
	}
	if req.Pages < 1 {
		req.Pages = 1
	}
	style := report.ParseStyle(req.Style)

	id := s.Store.Create()
	go s.render(id, req.Topic, req.Pages, style)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(createResponse{ID: id})
}

func (s *Server) render(id, topic string, pages int, style report.Style) {
	timeout := s.RenderTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	pdf, err := s.Build(ctx, topic, pages, style)
	if err != nil {
		log.Error().Err(err).Str("job", id).Str("topic", topic).Msg("report build failed")
		s.Store.Fail(id, err)
		return
	}
	log.Info().Str("job", id).Str("topic", topic).Int("pages", pages).
		Dur("took", time.Since(start)).Msg("report built")
	s.Store.Complete(id, pdf, Filename(topic))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.Store.Get(id)
	if !ok {
		httpError(w, http.StatusNotFound, "unknown job id")
		return
	}
	switch job.Status {
	case jobstore.StatusPending:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	case jobstore.StatusFailed:
		httpError(w, http.StatusInternalServerError, job.Err)
	default:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", job.Filename))
		w.Write(job.PDF)
	}
}

const indexPage = `<!doctype html>
<html>
<head><title>Report Generator</title></head>
<body>
<h1>Report Generator</h1>
<form id="f">
  <label>Topic <input name="topic" required></label>
  <label>Pages <input name="pages" type="number" value="5" min="1"></label>
  <label>Style
    <select name="style">
      <option value="typed">Typed</option>
      <option value="handwritten">Handwritten</option>
    </select>
  </label>
  <button>Generate</button>
</form>
<p id="status"></p>
<script>
const f = document.getElementById("f"), st = document.getElementById("status");
f.onsubmit = async (e) => {
  e.preventDefault();
  const d = Object.fromEntries(new FormData(f));
  d.pages = parseInt(d.pages, 10);
  st.textContent = "Generating...";
  const r = await fetch("/api/reports", {method: "POST",
    headers: {"Content-Type": "application/json"}, body: JSON.stringify(d)});
  const {id} = await r.json();
  const poll = async () => {
    const pr = await fetch("/api/reports/" + id);
    if (pr.status === 202) { setTimeout(poll, 1500); return; }
    if (!pr.ok) { st.textContent = "Failed: " + await pr.text(); return; }
    window.location = "/api/reports/" + id;
    st.textContent = "Done.";
  };
  poll();
};
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// Filename derives a safe download name from the topic.
func Filename(topic string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '_'
		default:
			return -1
		}
	}, topic)
	clean = strings.Trim(clean, "_")
	if clean == "" {
		clean = "report"
	}
	if len(clean) > 60 {
		clean = clean[:60]
	}
	return clean + ".pdf"
}

func httpError(w http.ResponseWriter, code int, msg string) {
	http.Error(w, msg, code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).
			Dur("took", time.Since(start)).Msg("http request")
	})
}

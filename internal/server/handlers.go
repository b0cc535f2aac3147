package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bipartisan-index/bipartisan/pkg/congress"
	"github.com/bipartisan-index/bipartisan/pkg/errors"
	"github.com/bipartisan-index/bipartisan/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatHTML: "text/html; charset=utf-8",
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sessionSummary is one entry of GET /sessions.
type sessionSummary struct {
	SessionNo   int                `json:"sessionNo"`
	Description string             `json:"description"`
	StartYear   int                `json:"startYear"`
	EndYear     *int               `json:"endYear"`
	Chambers    []congress.Chamber `json:"chambers"`
	SenateURL   string             `json:"senateUrl,omitempty"`
	HouseURL    string             `json:"houseUrl,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Sessions  int       `json:"sessions"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := healthResponse{Status: "ok", Sessions: len(s.ds), UpdatedAt: s.updatedAt}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	opts := s.render
	opts.Dataset = s.Dataset()
	opts.Formats = []string{pipeline.FormatHTML}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeBody(w, pipeline.FormatHTML, res.Artifacts[pipeline.PageArtifact])
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	ds := s.Dataset()
	out := make([]sessionSummary, 0, len(ds))
	for i := range ds {
		sess := &ds[i]
		out = append(out, sessionSummary{
			SessionNo:   sess.SessionNo,
			Description: sess.Description(),
			StartYear:   sess.StartYear,
			EndYear:     sess.EndYear,
			Chambers:    sess.Chambers(),
			SenateURL:   sess.SenateURL,
			HouseURL:    sess.HouseURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.lookup(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	chamber, err := congress.ParseChamber(chi.URLParam(r, "chamber"))
	if err != nil {
		s.writeErr(w, errors.Wrap(errors.ErrCodeInvalidChamber, err, "%v", err))
		return
	}
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil || format == pipeline.FormatHTML {
		s.writeErr(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format %q", format))
		return
	}

	opts := s.render
	if err := applyQuery(&opts, r); err != nil {
		s.writeErr(w, err)
		return
	}
	data, err := s.runner.RenderTarget(r.Context(), pipeline.Target{Session: sess, Chamber: chamber}, format, opts)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeBody(w, format, data)
}

// applyQuery reads ?width=, ?height= and ?style= overrides.
func applyQuery(opts *pipeline.Options, r *http.Request) error {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a positive integer", p.name)
		}
		*p.dst = n
	}
	if st := q.Get("style"); st != "" {
		opts.Style = st
	}
	return nil
}

func (s *Server) lookup(r *http.Request) (*congress.Session, error) {
	raw := chi.URLParam(r, "no")
	no, err := strconv.Atoi(raw)
	if err != nil || no <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid session number %q", raw)
	}
	sess, ok := s.Dataset().Find(no)
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %d not found", no)
	}
	return sess, nil
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeError(w, status, code, errors.UserMessage(err))
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeSessionNotFound, errors.ErrCodeChamberNotScored, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidChamber:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeBody(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

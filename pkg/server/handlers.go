package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/chart"
	serrors "github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/scale"
)

// MaxTickHint bounds the ticks field of scale requests.
const MaxTickHint = 100

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	var pngScale float64
	if raw := q.Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, serrors.New(serrors.ErrCodeInvalidInput, "invalid scale %q", raw))
			return
		}
		pngScale = v
	}

	c, err := s.decodeChart(w, r, q.Get("chart"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), c, pipeline.Options{
		Formats: []string{format},
		Scale:   pngScale,
		Refresh: q.Get("refresh") == "true",
		Logger:  s.logger.With("id", RequestID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Chart-Hash", res.ChartHash)
	if res.CacheInfo.RenderHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	if res.Geometry != nil && res.Geometry.Skipped > 0 {
		h.Set("X-Skipped-Values", strconv.Itoa(res.Geometry.Skipped))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type scaleRequest struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Ticks       int     `json:"ticks,omitempty"`
	BeginAtZero bool    `json:"begin_at_zero,omitempty"`
	Log         bool    `json:"log,omitempty"`
}

type scaleResponse struct {
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Interval float64   `json:"interval"`
	Decimals int       `json:"decimals"`
	Ticks    []float64 `json:"ticks"`
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Ticks < 0 || req.Ticks > MaxTickHint {
		s.writeError(w, r, serrors.New(serrors.ErrCodeInvalidInput, "ticks %d outside [0, %d]", req.Ticks, MaxTickHint))
		return
	}

	var sc scale.Scale
	var ticks []float64
	if req.Log {
		sc = scale.Log(req.Min, req.Max)
		ticks = scale.Decades(sc)
	} else {
		sc = scale.Nice(req.Min, req.Max, req.Ticks, scale.Options{ForceZero: req.BeginAtZero})
		ticks = sc.Ticks()
	}
	writeJSON(w, http.StatusOK, scaleResponse{
		Min:      sc.Min,
		Max:      sc.Max,
		Interval: sc.Interval,
		Decimals: sc.Decimals(),
		Ticks:    ticks,
	})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	c, err := s.decodeChart(w, r, r.URL.Query().Get("chart"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Levels(r.Context(), c, pipeline.LevelsOptions{
		Detailed: r.URL.Query().Get("detailed") == "true",
		Logger:   s.logger.With("id", RequestID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readBody reads at most MaxBodyBytes of the request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "read body")
	}
	return body, nil
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := s.readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

// decodeChart decodes the body as JSON, or TOML when the content type says
// so, and picks the named chart or the first one.
func (s *Server) decodeChart(w http.ResponseWriter, r *http.Request, name string) (*chart.Chart, error) {
	body, err := s.readBody(w, r)
	if err != nil {
		return nil, err
	}
	enc := chart.EncodingJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		enc = chart.EncodingTOML
	}
	charts, err := chart.Decode(body, enc)
	if err != nil {
		return nil, err
	}
	if name != "" {
		return chart.Find(charts, name)
	}
	return charts[0], nil
}

package interactive

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tdewolff/scatter"
	"go.uber.org/zap"
)

// Handler serves the interactive document: the HTML page at /, the bare chart at /chart.svg and the dataset at /data.csv. The state is read from the query string, so that every click on an axis label is a new request.
type Handler struct {
	doc *Document
	log *zap.Logger
	mux *http.ServeMux
}

// NewHandler returns an HTTP handler for the document. A nil logger discards all logs.
func NewHandler(doc *Document, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		doc: doc,
		log: logger,
		mux: http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.page)
	h.mux.HandleFunc("GET /chart.svg", h.chart)
	h.mux.HandleFunc("GET /data.csv", h.data)
	return h
}

type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w}
	h.mux.ServeHTTP(sw, r)
	h.log.Info("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("query", r.URL.RawQuery),
		zap.Int("status", sw.status),
		zap.Int("size", sw.size),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) (State, bool) {
	state, err := ParseState(r.URL.Query())
	if err != nil {
		h.log.Debug("bad state", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return State{}, false
	}
	return state, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.Error("render failed", zap.Error(err))
	status := http.StatusInternalServerError
	if errors.Is(err, scatter.ErrNoData) {
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	state, ok := h.state(w, r)
	if !ok {
		return
	}
	buf := &bytes.Buffer{}
	if err := h.doc.WritePage(buf, state); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	state, ok := h.state(w, r)
	if !ok {
		return
	}
	buf := &bytes.Buffer{}
	if err := h.doc.WriteSVG(buf, state); err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func (h *Handler) data(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	cw := csv.NewWriter(w)
	cw.Write([]string{"state", "abbr", "poverty", "age", "healthcare", "smokes"})
	for _, rec := range h.doc.Data() {
		cw.Write([]string{
			rec.State,
			rec.Abbr,
			strconv.FormatFloat(rec.Poverty, 'f', -1, 64),
			strconv.FormatFloat(rec.Age, 'f', -1, 64),
			strconv.FormatFloat(rec.Healthcare, 'f', -1, 64),
			strconv.FormatFloat(rec.Smokes, 'f', -1, 64),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.Warn("write data", zap.Error(err))
	}
}

package interactive

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tdewolff/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestHandlerPage(t *testing.T) {
	h := NewHandler(testDocument(t, false), nil)
	w := serve(h, http.MethodGet, "/")
	test.T(t, w.Code, http.StatusOK)
	test.String(t, w.Header().Get("Content-Type"), "text/html; charset=utf-8")
	test.That(t, strings.Contains(w.Body.String(), `<a href="?fx=poverty&amp;x=age&amp;y=healthcare">`))

	w = serve(h, http.MethodGet, "/?x=age&fx=poverty")
	test.T(t, w.Code, http.StatusOK)
	test.That(t, strings.Contains(w.Body.String(), "animateTransform"))
}

func TestHandlerChart(t *testing.T) {
	h := NewHandler(testDocument(t, false), nil)
	w := serve(h, http.MethodGet, "/chart.svg?y=smokes")
	test.T(t, w.Code, http.StatusOK)
	test.String(t, w.Header().Get("Content-Type"), "image/svg+xml")
	test.That(t, strings.HasPrefix(w.Body.String(), "<svg"))
	test.That(t, strings.Contains(w.Body.String(), `class="axis-label y smokes active"`))
}

func TestHandlerData(t *testing.T) {
	h := NewHandler(testDocument(t, false), nil)
	w := serve(h, http.MethodGet, "/data.csv")
	test.T(t, w.Code, http.StatusOK)
	test.String(t, w.Body.String(), "state,abbr,poverty,age,healthcare,smokes\n"+
		"Alabama,AL,19.3,38.6,13.9,21.1\n"+
		"Alaska,AK,11.2,33.3,15,19.9\n"+
		"Arizona,AZ,18.2,36.9,14.4,16.5\n")
}

func TestHandlerErrors(t *testing.T) {
	h := NewHandler(testDocument(t, false), nil)
	test.T(t, serve(h, http.MethodGet, "/?x=smokes").Code, http.StatusBadRequest)
	test.T(t, serve(h, http.MethodGet, "/chart.svg?fy=age").Code, http.StatusBadRequest)
	test.T(t, serve(h, http.MethodGet, "/index.html").Code, http.StatusNotFound)
	test.T(t, serve(h, http.MethodPost, "/").Code, http.StatusMethodNotAllowed)
}

func TestHandlerLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(testDocument(t, false), zap.New(core))
	serve(h, http.MethodGet, "/chart.svg?x=age")
	serve(h, http.MethodGet, "/?y=age")

	entries := logs.FilterMessage("request").All()
	test.T(t, len(entries), 2)
	fields := entries[0].ContextMap()
	test.T(t, fields["path"], "/chart.svg")
	test.T(t, fields["query"], "x=age")
	test.T(t, fields["status"], int64(http.StatusOK))
	fields = entries[1].ContextMap()
	test.T(t, fields["status"], int64(http.StatusBadRequest))
}

// Package httpmetrics counts served requests with OpenCensus.
package httpmetrics

import (
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	keyPath   = tag.MustNewKey("path")
	keyStatus = tag.MustNewKey("status")
)

type Wrapper struct {
	requestCount     *stats.Int64Measure
	requestCountView *view.View

	inner http.Handler
}

func New(inner http.Handler) *Wrapper {
	r := &Wrapper{}

	r.requestCount = stats.Int64("boggle/requests", "Requests handled", stats.UnitDimensionless)
	r.requestCountView = &view.View{
		Name:        "boggle/requests",
		Description: "Counter of requests that have been handled",

		TagKeys: []tag.Key{keyPath, keyStatus},

		Measure:     r.requestCount,
		Aggregation: view.Count(),
	}

	r.inner = inner

	return r
}

func (h *Wrapper) RegisterMetrics() error {
	return view.Register(h.requestCountView)
}

func (h *Wrapper) UnregisterMetrics() {
	view.Unregister(h.requestCountView)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Wrapper) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.inner.ServeHTTP(sr, r)

	glog.V(1).Infof("Served path=%q status=%d useragent=%q", r.URL.Path, sr.status, r.UserAgent())

	if err := stats.RecordWithTags(
		r.Context(),
		[]tag.Mutator{
			tag.Insert(keyPath, r.URL.Path),
			tag.Insert(keyStatus, strconv.Itoa(sr.status)),
		},
		h.requestCount.M(1),
	); err != nil {
		glog.Warningf("Failed to record request metric: %v", err)
	}
}

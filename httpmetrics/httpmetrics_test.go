package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opencensus.io/stats/view"
)

func TestCountsRequestsByStatus(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	})

	h := New(inner)
	if err := h.RegisterMetrics(); err != nil {
		t.Fatalf("Error registering metrics: %v", err)
	}
	defer h.UnregisterMetrics()

	for _, path := range []string{"/solve", "/solve", "/missing"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rows, err := view.RetrieveData("boggle/requests")
	if err != nil {
		t.Fatalf("Error retrieving view data: %v", err)
	}

	got := map[string]int64{}
	for _, row := range rows {
		key := ""
		for _, tg := range row.Tags {
			key += tg.Key.Name() + "=" + tg.Value + ";"
		}
		got[key] = row.Data.(*view.CountData).Value
	}

	want := map[string]int64{
		"path=/solve;status=200;":   2,
		"path=/missing;status=404;": 1,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Count for %q = %d, want %d (all rows %v)", k, got[k], v, got)
		}
	}
}

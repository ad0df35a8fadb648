// boggle-benchmark times the solver on random boards of growing size.
package main

import (
	"context"
	"flag"
	"html/template"
	"math/rand"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"

	"row-major.net/boggle/board"
	"row-major.net/boggle/load"
	"row-major.net/boggle/solver"
	"row-major.net/boggle/trie"

	"github.com/golang/glog"
)

var (
	listen      = flag.String("listen", ":8080", "Where to serve the progress page.  Empty disables it.")
	dictionary  = flag.String("dictionary", "words.txt", "Local word list to search for.")
	maxSize     = flag.Int("max-size", 12, "Largest board edge length to time.")
	boards      = flag.Int("boards", 10, "Boards timed per size.")
	parallelism = flag.Int("parallelism", runtime.NumCPU(), "Boards solved concurrently.")
	seed        = flag.Int64("seed", 487489, "Random seed for board generation.")
)

// letterWeights approximates English letter frequency, in tenths of a percent.
var letterWeights = map[rune]int{
	'a': 82, 'b': 15, 'c': 28, 'd': 43, 'e': 127, 'f': 22, 'g': 20, 'h': 61,
	'i': 70, 'j': 2, 'k': 8, 'l': 40, 'm': 24, 'n': 67, 'o': 75, 'p': 19,
	'q': 1, 'r': 60, 's': 63, 't': 91, 'u': 28, 'v': 10, 'w': 24, 'x': 2,
	'y': 20, 'z': 1,
}

type letterTable struct {
	letters []rune
	cumul   []int
}

func newLetterTable() *letterTable {
	lt := &letterTable{}
	for l := range letterWeights {
		lt.letters = append(lt.letters, l)
	}
	sort.Slice(lt.letters, func(i, j int) bool { return lt.letters[i] < lt.letters[j] })

	total := 0
	for _, l := range lt.letters {
		total += letterWeights[l]
		lt.cumul = append(lt.cumul, total)
	}
	return lt
}

func (lt *letterTable) pick(r *rand.Rand) rune {
	n := r.Intn(lt.cumul[len(lt.cumul)-1])
	i := sort.SearchInts(lt.cumul, n+1)
	return lt.letters[i]
}

func randomBoard(r *rand.Rand, lt *letterTable, size int) board.Grid {
	g := board.Grid{
		Tiles: make([]rune, size*size),
		Size:  size,
	}
	for i := range g.Tiles {
		g.Tiles[i] = lt.pick(r)
	}
	return g
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *boards < 1 {
		glog.Fatalf("-boards must be at least 1, got %d", *boards)
	}

	ctx := context.Background()

	words, err := load.DictionaryFromPath(ctx, *dictionary)
	if err != nil {
		glog.Fatalf("Failed to load dictionary: %v", err)
	}
	s := solver.New(trie.FromWords(words))

	ph := &ProgressHandler{}
	if *listen != "" {
		http.Handle("/", ph)
		go func() {
			if err := http.ListenAndServe(*listen, nil); err != nil {
				glog.Errorf("Progress server died: %v", err)
			}
		}()
	}

	r := rand.New(rand.NewSource(*seed))
	lt := newLetterTable()

	for dim := 1; dim <= *maxSize; dim++ {
		grids := make([]board.Grid, *boards)
		for i := range grids {
			grids[i] = randomBoard(r, lt, dim)
		}

		ph.Lock.Lock()
		ph.Size = dim
		ph.Sample = grids[0].DisplayString()
		ph.Lock.Unlock()

		runTimings := make([]time.Duration, 0, len(grids))
		totalWords := 0
		for _, g := range grids {
			start := time.Now()
			found, _ := s.Solve(ctx, g)
			runTimings = append(runTimings, time.Since(start))
			totalWords += found.Len()
		}

		start := time.Now()
		if _, err := s.SolveAll(ctx, grids, *parallelism); err != nil {
			glog.Fatalf("Error solving %dx%d boards: %v", dim, dim, err)
		}
		batchElapsed := time.Since(start)

		sort.Slice(runTimings, func(i, j int) bool {
			return runTimings[i] < runTimings[j]
		})

		ph.Lock.Lock()
		ph.Results = append(ph.Results, SizeResult{
			Size:      dim,
			Min:       runTimings[0],
			Median:    runTimings[len(runTimings)/2],
			Max:       runTimings[len(runTimings)-1],
			Batch:     batchElapsed,
			MeanWords: totalWords / len(grids),
		})
		ph.Lock.Unlock()

		glog.Infof("%dx%d min=%v med=%v max=%v batch=%v mean_words=%d", dim, dim, runTimings[0], runTimings[len(runTimings)/2], runTimings[len(runTimings)-1], batchElapsed, totalWords/len(grids))
	}
}

type SizeResult struct {
	Size      int
	Min       time.Duration
	Median    time.Duration
	Max       time.Duration
	Batch     time.Duration
	MeanWords int
}

type ProgressHandler struct {
	Lock sync.Mutex

	Size    int
	Sample  string
	Results []SizeResult
}

var progressTemplate = template.Must(template.New("progress").Parse(`
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Progress Report</title>
  </head>
  <body>
    <h1>Progress Report</h1>
    <p>Currently timing {{.Size}}x{{.Size}} boards.</p>
    <pre>{{.Sample}}</pre>
    <table>
      <thead>
        <tr><th>Size</th><th>Min</th><th>Median</th><th>Max</th><th>Batch</th><th>Mean Words</th></tr>
      </thead>
      <tbody>
        {{range .Results}}
        <tr><td>{{.Size}}</td><td>{{.Min}}</td><td>{{.Median}}</td><td>{{.Max}}</td><td>{{.Batch}}</td><td>{{.MeanWords}}</td></tr>
        {{end}}
      </tbody>
    </table>
  </body>
  <script>setTimeout(function() {location.reload();}, 30000);</script>
</html>
`))

type ProgressTemplateVars struct {
	Size    int
	Sample  string
	Results []SizeResult
}

func (h *ProgressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Lock.Lock()
	vars := ProgressTemplateVars{
		Size:    h.Size,
		Sample:  h.Sample,
		Results: append([]SizeResult(nil), h.Results...),
	}
	h.Lock.Unlock()

	if err := progressTemplate.Execute(w, vars); err != nil {
		glog.Errorf("Error rendering progress page: %v", err)
	}
}

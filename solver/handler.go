package solver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"row-major.net/boggle/board"
	"row-major.net/boggle/load"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// maxRequestBytes bounds solve request bodies.
const maxRequestBytes = 1 << 20

type Handler struct {
	solver *Solver
}

func NewHandler(s *Solver) *Handler {
	return &Handler{
		solver: s,
	}
}

type solveRequest struct {
	// Tiles in row-major order.  Each is a single letter or "qu".
	Tiles []string
}

type solveResponse struct {
	Size  int
	Grid  []string
	Words []string
}

func tilesFromRequest(req *solveRequest) ([]rune, error) {
	tiles := make([]rune, 0, len(req.Tiles))
	for i, t := range req.Tiles {
		toks := load.Tokens(t)
		if len(toks) != 1 {
			return nil, fmt.Errorf("tile %d (%q) must be a single letter or \"qu\"", i, t)
		}
		tiles = append(tiles, toks[0])
	}
	return tiles, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("row-major.net/boggle/solver")
	ctx, span := tracer.Start(r.Context(), "Solver Serve HTTP")
	defer span.End()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	req := &solveRequest{}
	if err := json.Unmarshal(reqBody, req); err != nil {
		http.Error(w, fmt.Sprintf("bad request: invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	tiles, err := tilesFromRequest(req)
	if err != nil {
		http.Error(w, fmt.Sprintf("bad request: %v", err), http.StatusBadRequest)
		return
	}

	g, err := board.New(tiles)
	if err != nil {
		s := load.NearestSquare(len(tiles))
		http.Error(w, fmt.Sprintf("bad request: %v; nearest valid board is %dx%d", err, s, s), http.StatusBadRequest)
		return
	}

	span.SetAttributes(attribute.Int("board_size", g.Size))

	words, stats := h.solver.Solve(ctx, g)
	glog.V(2).Infof("Solved %dx%d board: words=%d states_considered=%d", g.Size, g.Size, stats.WordsFound, stats.StatesConsidered)

	response := &solveResponse{
		Size:  g.Size,
		Grid:  make([]string, len(g.Tiles)),
		Words: words.Sorted(),
	}
	for i, t := range g.Tiles {
		response.Grid[i] = board.ExpandQu(string(t))
	}

	respBody, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	w.Write(respBody)
}

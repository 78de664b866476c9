// Package check solves puzzle scenes without a window and reports where each
// beam ends.
package check

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"laserpuzzle/internal/assets"
	"laserpuzzle/internal/laser"
	"laserpuzzle/internal/logging"
	"laserpuzzle/internal/world"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Beam is one emitter's trace.
type Beam struct {
	Emitter     string
	Outcome     laser.Outcome
	Hits        []string
	Total       int
	Deflections int
	Points      int
	Fingerprint uint64
}

// Report is the result of solving one scene file.
type Report struct {
	Path   string
	Scene  string
	Beams  []Beam
	Solved bool
	Err    error
}

// Scene loads path, starts it and fires every enabled emitter once.
func Scene(path string) Report {
	r := Report{Path: path}
	w, err := world.Load(assets.ScenePath(path))
	if err != nil {
		r.Err = err
		return r
	}
	defer w.Unload()

	r.Scene = w.Scene.Name
	w.Start()
	for _, e := range w.Puzzle.Emitters {
		if !e.Settings.Enabled {
			continue
		}
		e.Activate()
		r.Beams = append(r.Beams, beamOf(e))
	}
	r.Solved = w.Puzzle.Solved()
	return r
}

func beamOf(e *laser.Emitter) Beam {
	res := e.Result()
	b := Beam{
		Outcome:     res.Outcome,
		Total:       e.TotalDeflectorCount(),
		Deflections: res.Deflections,
		Points:      len(res.Points),
		Fingerprint: res.Fingerprint,
	}
	if g := e.GetGameObject(); g != nil {
		b.Emitter = g.Name
	}
	for _, d := range res.Deflectors {
		name := "?"
		if g := d.GetGameObject(); g != nil {
			name = g.Name
		}
		b.Hits = append(b.Hits, name)
	}
	return b
}

// Run checks every path concurrently, at most limit at a time (GOMAXPROCS when
// limit <= 0). Reports come back in path order. Load failures are carried on
// each report; the error is only ever ctx's.
func Run(ctx context.Context, paths []string, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = Scene(path)
			logging.L().Named("check").Debug("scene checked",
				zap.String("path", path), zap.Bool("solved", reports[i].Solved), zap.Error(reports[i].Err))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Failed reports whether any scene could not be loaded.
func Failed(reports []Report) bool {
	for _, r := range reports {
		if r.Err != nil {
			return true
		}
	}
	return false
}

func (r Report) Write(w io.Writer) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "%s: error: %v\n", r.Path, r.Err)
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): solved=%t\n", r.Path, r.Scene, r.Solved)
	if len(r.Beams) == 0 {
		b.WriteString("  no enabled emitters\n")
	}
	for _, beam := range r.Beams {
		fmt.Fprintf(&b, "  %s: %s hits=%d/%d [%s] deflections=%d points=%d fingerprint=%016x\n",
			beam.Emitter, beam.Outcome, len(beam.Hits), beam.Total,
			strings.Join(beam.Hits, " "), beam.Deflections, beam.Points, beam.Fingerprint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

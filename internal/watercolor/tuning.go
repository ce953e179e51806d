package watercolor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// Test wash used by MeasureWash.
const (
	washWater    = 1.0
	washLoad     = 0.5
	washCoreFrac = 0.45
	washRimInner = 0.75
	washRimOuter = 1.15

	rimScoreWeight  = 1.0
	granScoreWeight = 0.5
)

// WashMetrics summarises a test wash after it has dried.
type WashMetrics struct {
	// RimContrast is the mean deposited density in the rim band over the
	// mean in the core. Above 1 means the edge darkened.
	RimContrast float64
	// GranulationCV is the coefficient of variation of core density.
	GranulationCV float64
	// Coverage is the fraction of cells holding any deposited pigment.
	Coverage float64
	// Steps is how many ticks ran before the wash dried or the budget ran out.
	Steps int
	Dry   bool
}

// wash sets a disk of the grid to a uniform puddle of tinted water.
func (e *Engine) wash(cx, cy int, radius, water, load float64, col RGB) {
	g := e.grid
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if math.Hypot(float64(x-cx), float64(y-cy)) > radius {
				continue
			}
			i := y*g.w + x
			g.water.Cells()[i] = water
			g.suspended[ChanR].Cells()[i] = col.R * load
			g.suspended[ChanG].Cells()[i] = col.G * load
			g.suspended[ChanB].Cells()[i] = col.B * load
			g.suspended[ChanLoad].Cells()[i] = load
		}
	}
}

// MeasureWash lays a round wash in the middle of a canvas built from cfg,
// runs it for at most steps ticks and scores the dried result.
func MeasureWash(cfg Config, steps int) WashMetrics {
	e := NewWithConfig(cfg)
	cx, cy := e.w/2, e.h/2
	radius := float64(min(e.w, e.h)) / 4
	e.wash(cx, cy, radius, washWater, washLoad, RGB{R: 0.1, G: 0.2, B: 0.65})

	m := WashMetrics{}
	for m.Steps < steps {
		e.Step()
		m.Steps++
		if e.WaterTotal() < dryEpsilon {
			m.Dry = true
			break
		}
	}

	dep := e.grid.deposited[ChanLoad].Cells()
	var inner, rim []float64
	covered := 0
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			i := y*e.w + x
			if dep[i] > 0 {
				covered++
			}
			d := math.Hypot(float64(x-cx), float64(y-cy)) / radius
			switch {
			case d <= washCoreFrac:
				inner = append(inner, dep[i])
			case d >= washRimInner && d <= washRimOuter:
				rim = append(rim, dep[i])
			}
		}
	}
	m.Coverage = float64(covered) / float64(len(dep))
	if len(inner) == 0 || len(rim) == 0 {
		return m
	}
	coreMean, coreStd := stat.MeanStdDev(inner, nil)
	if coreMean > 0 {
		m.RimContrast = stat.Mean(rim, nil) / coreMean
		m.GranulationCV = coreStd / coreMean
	}
	return m
}

// SweepCandidate is one point of a tuning grid.
type SweepCandidate struct {
	Adhesion    float64
	Granularity float64
	Evaporation float64
}

func (c SweepCandidate) String() string {
	return fmt.Sprintf("adhesion=%.3f granularity=%.2f evaporation=%.4f", c.Adhesion, c.Granularity, c.Evaporation)
}

// SweepResult pairs a candidate with its wash metrics and score.
type SweepResult struct {
	Candidate SweepCandidate
	Metrics   WashMetrics
	Score     float64
}

// SweepGrid returns the cartesian product of the given axes.
func SweepGrid(adhesion, granularity, evaporation []float64) []SweepCandidate {
	out := make([]SweepCandidate, 0, len(adhesion)*len(granularity)*len(evaporation))
	for _, a := range adhesion {
		for _, g := range granularity {
			for _, ev := range evaporation {
				out = append(out, SweepCandidate{Adhesion: a, Granularity: g, Evaporation: ev})
			}
		}
	}
	return out
}

// ScoreWash rewards rim darkening and visible granulation. Washes that never
// dried score zero.
func ScoreWash(m WashMetrics) float64 {
	if !m.Dry {
		return 0
	}
	return rimScoreWeight*math.Max(m.RimContrast-1, 0) + granScoreWeight*m.GranulationCV
}

// WashSweep measures every candidate on up to workers goroutines and returns
// the results best first. Ties keep candidate order.
func WashSweep(ctx context.Context, base Config, candidates []SweepCandidate, steps, workers int) ([]SweepResult, error) {
	results := make([]SweepResult, len(candidates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, cand := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.Pigment.Adhesion = cand.Adhesion
			cfg.Pigment.Granularity = cand.Granularity
			cfg.Physics.Evaporation = cand.Evaporation
			m := MeasureWash(cfg, steps)
			results[i] = SweepResult{Candidate: cand, Metrics: m, Score: ScoreWash(m)}
			Logger().Debug("watercolor: sweep candidate measured",
				slog.String("candidate", cand.String()),
				slog.Float64("score", results[i].Score))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(results, func(a, b SweepResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return results, nil
}

package wilderness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Oracle is the upstream base terrain collaborator. Implementations must be
// side-effect-free and safe for concurrent calls from batch workers.
type Oracle interface {
	SampleBaseTerrain(ctx context.Context, p Coordinate) (BaseTerrainSample, error)
}

// EvaluatorConfig bounds the evaluator's resource use. The worker count is a
// configuration constant, never derived from request size.
type EvaluatorConfig struct {
	MaxBatchPoints int           // request ceiling, points per rectangle
	Workers        int           // bounded pool size for per-point evaluation
	CacheTTL       time.Duration // 0 disables cache writes
}

// DefaultEvaluatorConfig returns the deployed limits.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		MaxBatchPoints: 1024,
		Workers:        8,
		CacheTTL:       30 * time.Second,
	}
}

// Evaluator drives the compositor over single coordinates and coordinate
// rectangles against the current geometry snapshot.
type Evaluator struct {
	snapshots  *SnapshotHolder
	oracle     Oracle
	compositor *Compositor
	cache      Cache // optional
	cfg        EvaluatorConfig
}

// NewEvaluator wires the engine together. cache may be nil.
func NewEvaluator(snapshots *SnapshotHolder, oracle Oracle, compositor *Compositor, cache Cache, cfg EvaluatorConfig) *Evaluator {
	if cfg.MaxBatchPoints <= 0 {
		cfg.MaxBatchPoints = DefaultEvaluatorConfig().MaxBatchPoints
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultEvaluatorConfig().Workers
	}
	return &Evaluator{
		snapshots:  snapshots,
		oracle:     oracle,
		compositor: compositor,
		cache:      cache,
		cfg:        cfg,
	}
}

// TerrainAt computes the effective terrain at a single coordinate.
func (e *Evaluator) TerrainAt(ctx context.Context, x, y int) (EffectiveTerrain, error) {
	p := Coordinate{X: x, Y: y}
	if !p.InDomain() {
		return EffectiveTerrain{}, fmt.Errorf("point %s: %w", p, ErrOutOfDomain)
	}
	snap := e.snapshots.Current()
	return e.evaluatePoint(ctx, snap, p)
}

// TerrainBatch computes the effective terrain for every coordinate in the
// inclusive rectangle. Results are row-major: y ascending outer, x ascending
// inner, so repeated identical requests produce identically ordered output.
// Ceiling and domain violations are rejected before any per-point work.
func (e *Evaluator) TerrainBatch(ctx context.Context, xMin, yMin, xMax, yMax int) ([]EffectiveTerrain, error) {
	if xMin > xMax || yMin > yMax {
		return nil, fmt.Errorf("inverted rectangle (%d,%d)-(%d,%d): %w", xMin, yMin, xMax, yMax, ErrOutOfDomain)
	}
	lo := Coordinate{X: xMin, Y: yMin}
	hi := Coordinate{X: xMax, Y: yMax}
	if !lo.InDomain() || !hi.InDomain() {
		return nil, fmt.Errorf("rectangle (%d,%d)-(%d,%d): %w", xMin, yMin, xMax, yMax, ErrOutOfDomain)
	}

	width := xMax - xMin + 1
	height := yMax - yMin + 1
	points := width * height
	if points > e.cfg.MaxBatchPoints {
		return nil, fmt.Errorf("%d points exceeds ceiling %d: %w", points, e.cfg.MaxBatchPoints, ErrRequestTooLarge)
	}

	// One snapshot for the whole batch: every point sees the same geometry.
	snap := e.snapshots.Current()

	// Workers write into pre-sized slots indexed by position; output order is
	// deterministic regardless of completion order.
	results := make([]EffectiveTerrain, points)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i := 0; i < points; i++ {
		g.Go(func() error {
			p := Coordinate{X: xMin + i%width, Y: yMin + i/width}
			t, err := e.evaluatePoint(gctx, snap, p)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Partial terrain sets are not a meaningful product; the whole batch
		// fails on deadline or on any upstream fetch failure.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("batch: %w", ErrTimeout)
		}
		return nil, err
	}
	return results, nil
}

func (e *Evaluator) evaluatePoint(ctx context.Context, snap *Snapshot, p Coordinate) (EffectiveTerrain, error) {
	if e.cache != nil {
		if v, ok := e.cache.Get(p, snap.Version); ok {
			return v, nil
		}
	}

	base, err := e.oracle.SampleBaseTerrain(ctx, p)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return EffectiveTerrain{}, context.DeadlineExceeded
		}
		return EffectiveTerrain{}, fmt.Errorf("sample %s: %w", p, err)
	}

	t := e.compositor.Composite(p, base, Resolve(snap.Index, p))

	if e.cache != nil && e.cfg.CacheTTL > 0 {
		e.cache.Put(p, snap.Version, t, e.cfg.CacheTTL)
	}
	return t, nil
}

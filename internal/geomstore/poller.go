package geomstore

import (
	"context"
	"time"

	"github.com/LuminariMUD/wildeditor-sub001/internal/monitoring"
	"github.com/LuminariMUD/wildeditor-sub001/internal/timeutil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

// Poller watches the catalog's geometry version and swaps a freshly built
// snapshot into the holder whenever the editor commits a change. Readers are
// never blocked; they keep the previous snapshot until the swap.
type Poller struct {
	store    *Store
	holder   *wilderness.SnapshotHolder
	interval time.Duration
	clock    timeutil.Clock
}

// NewPoller builds a poller. A nil clock uses the real clock.
func NewPoller(store *Store, holder *wilderness.SnapshotHolder, interval time.Duration, clock timeutil.Clock) *Poller {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Poller{store: store, holder: holder, interval: interval, clock: clock}
}

// RefreshNow reloads the catalog if its version differs from the published
// snapshot, swapping atomically on change.
func (p *Poller) RefreshNow(ctx context.Context) error {
	current := p.holder.Current()
	v, err := p.store.GeometryVersion(ctx)
	if err != nil {
		return err
	}
	if v == current.Version {
		return nil
	}

	idx, version, err := p.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	p.holder.Swap(idx, version)
	monitoring.Logf("geometry snapshot swapped: version %d -> %d (%d regions, %d paths)",
		current.Version, version, idx.RegionCount(), idx.PathCount())
	return nil
}

// Run polls until ctx is cancelled. Load failures are logged and retried on
// the next tick; the previous snapshot stays in effect.
func (p *Poller) Run(ctx context.Context) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if err := p.RefreshNow(ctx); err != nil {
				monitoring.Logf("geometry refresh failed: %v", err)
			}
		}
	}
}

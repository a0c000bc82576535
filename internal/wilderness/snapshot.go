package wilderness

import "sync/atomic"

// Snapshot pairs one immutable geometry index with the catalog version it was
// built from. Cache keys carry the version so entries computed against an old
// snapshot are never served after an edit.
type Snapshot struct {
	Index   *GeometryIndex
	Version uint64
}

// SnapshotHolder publishes the current geometry snapshot to readers. Updates
// swap in a whole new snapshot atomically; batches traversing the previous
// one keep a complete, internally consistent view. There is no locking on
// the read path.
type SnapshotHolder struct {
	cur atomic.Pointer[Snapshot]
}

// NewSnapshotHolder starts with an empty geometry set at version 0.
func NewSnapshotHolder() *SnapshotHolder {
	h := &SnapshotHolder{}
	empty, _ := NewGeometryIndex(nil, nil)
	h.cur.Store(&Snapshot{Index: empty, Version: 0})
	return h
}

// Current returns the snapshot in effect. Never nil.
func (h *SnapshotHolder) Current() *Snapshot {
	return h.cur.Load()
}

// Swap publishes a new geometry snapshot. The version must come from the
// persistence collaborator's monotonically increasing counter.
func (h *SnapshotHolder) Swap(idx *GeometryIndex, version uint64) {
	h.cur.Store(&Snapshot{Index: idx, Version: version})
}

// Package geomstore reads the builder-maintained geometry catalog (region
// polygons and path polylines) from sqlite and builds immutable engine
// snapshots from it. Builder CRUD lives in the external editor; this side
// only loads, validates at ingestion, and tracks the geometry version.
package geomstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

// Store wraps the sqlite geometry catalog.
type Store struct {
	*sql.DB
}

// Open opens (or creates) the catalog at path and migrates the schema to the
// latest version. The embedded migrations are the only schema source.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	return s, nil
}

// GeometryVersion reads the catalog's monotonically increasing version
// counter. The editor bumps it on every region/path add, edit or delete.
func (s *Store) GeometryVersion(ctx context.Context) (uint64, error) {
	var v uint64
	err := s.QueryRowContext(ctx, `SELECT geometry_version FROM catalog_meta WHERE id = 1`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("read geometry version: %w", err)
	}
	return v, nil
}

// LoadSnapshot reads the full catalog and builds a validated geometry index.
// The returned version is the one read before the rows, re-checked after, so
// a concurrent edit forces a retry instead of a torn snapshot.
func (s *Store) LoadSnapshot(ctx context.Context) (*wilderness.GeometryIndex, uint64, error) {
	for {
		before, err := s.GeometryVersion(ctx)
		if err != nil {
			return nil, 0, err
		}

		regions, err := s.loadRegions(ctx)
		if err != nil {
			return nil, 0, err
		}
		paths, err := s.loadPaths(ctx)
		if err != nil {
			return nil, 0, err
		}

		after, err := s.GeometryVersion(ctx)
		if err != nil {
			return nil, 0, err
		}
		if after != before {
			continue
		}

		idx, err := wilderness.NewGeometryIndex(regions, paths)
		if err != nil {
			return nil, 0, fmt.Errorf("build geometry index: %w", err)
		}
		return idx, before, nil
	}
}

func (s *Store) loadRegions(ctx context.Context) ([]wilderness.RegionOverlay, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT region_id, name, kind, props
		FROM regions
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()

	var regions []wilderness.RegionOverlay
	for rows.Next() {
		var r wilderness.RegionOverlay
		var kind int
		if err := rows.Scan(&r.ID, &r.Name, &kind, &r.Props); err != nil {
			return nil, fmt.Errorf("scan region row: %w", err)
		}
		r.Kind = wilderness.RegionKind(kind)
		regions = append(regions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list regions rows: %w", err)
	}

	for i := range regions {
		ring, err := s.loadVertices(ctx, "region_vertices", "region_id", regions[i].ID)
		if err != nil {
			return nil, err
		}
		regions[i].Ring = ring
	}
	return regions, nil
}

func (s *Store) loadPaths(ctx context.Context) ([]wilderness.PathOverlay, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT path_id, name, kind, width
		FROM paths
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	var paths []wilderness.PathOverlay
	for rows.Next() {
		var p wilderness.PathOverlay
		var kind int
		if err := rows.Scan(&p.ID, &p.Name, &kind, &p.Width); err != nil {
			return nil, fmt.Errorf("scan path row: %w", err)
		}
		p.Kind = wilderness.PathKind(kind)
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list paths rows: %w", err)
	}

	for i := range paths {
		pts, err := s.loadVertices(ctx, "path_vertices", "path_id", paths[i].ID)
		if err != nil {
			return nil, err
		}
		paths[i].Points = pts
	}
	return paths, nil
}

func (s *Store) loadVertices(ctx context.Context, table, idCol, id string) ([]wilderness.Coordinate, error) {
	rows, err := s.QueryContext(ctx,
		fmt.Sprintf(`SELECT x, y FROM %s WHERE %s = ? ORDER BY seq ASC`, table, idCol), id)
	if err != nil {
		return nil, fmt.Errorf("list vertices for %s: %w", id, err)
	}
	defer rows.Close()

	var pts []wilderness.Coordinate
	for rows.Next() {
		var c wilderness.Coordinate
		if err := rows.Scan(&c.X, &c.Y); err != nil {
			return nil, fmt.Errorf("scan vertex row: %w", err)
		}
		pts = append(pts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vertices rows: %w", err)
	}
	return pts, nil
}

// InsertRegion writes a region and its ring, assigning a UUID when the ID is
// empty, and bumps the geometry version. Used by ingest tooling and tests;
// builder-facing CRUD lives in the external editor.
func (s *Store) InsertRegion(ctx context.Context, r *wilderness.RegionOverlay) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var pos int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM regions`).Scan(&pos); err != nil {
			return fmt.Errorf("count regions: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO regions (region_id, name, kind, props, position, created_at_ns) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, int(r.Kind), r.Props, pos, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("insert region: %w", err)
		}
		for i, v := range r.Ring {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO region_vertices (region_id, seq, x, y) VALUES (?, ?, ?, ?)`,
				r.ID, i, v.X, v.Y); err != nil {
				return fmt.Errorf("insert region vertex: %w", err)
			}
		}
		return bumpVersion(ctx, tx)
	})
}

// InsertPath writes a path and its polyline, assigning a UUID when the ID is
// empty, and bumps the geometry version.
func (s *Store) InsertPath(ctx context.Context, p *wilderness.PathOverlay) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var pos int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM paths`).Scan(&pos); err != nil {
			return fmt.Errorf("count paths: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO paths (path_id, name, kind, width, position, created_at_ns) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, int(p.Kind), p.Width, pos, time.Now().UnixNano())
		if err != nil {
			return fmt.Errorf("insert path: %w", err)
		}
		for i, v := range p.Points {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO path_vertices (path_id, seq, x, y) VALUES (?, ?, ?, ?)`,
				p.ID, i, v.X, v.Y); err != nil {
				return fmt.Errorf("insert path vertex: %w", err)
			}
		}
		return bumpVersion(ctx, tx)
	})
}

// BumpVersion increments the geometry version without changing rows, used
// when the editor mutates geometry through its own connection.
func (s *Store) BumpVersion(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return bumpVersion(ctx, tx)
	})
}

func bumpVersion(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE catalog_meta SET geometry_version = geometry_version + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("bump geometry version: %w", err)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

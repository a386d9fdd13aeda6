package db

import (
	"context"

	"hackhub/internal/store"
)

// CountDocuments counts job search results and language detections by state.
func (d *DB) CountDocuments(ctx context.Context) ([]store.RecordCount, error) {
	var counts []store.RecordCount
	for _, c := range []string{store.CollectionJobSearchResults, store.CollectionLanguageDetections} {
		rows, err := d.Pool.Query(ctx, `SELECT deleted, COUNT(*) FROM `+c+` GROUP BY deleted`)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var (
				deleted bool
				n       int64
			)
			if err := rows.Scan(&deleted, &n); err != nil {
				rows.Close()
				return nil, err
			}
			counts = append(counts, store.RecordCount{Collection: c, State: store.State(deleted), Count: n})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return counts, nil
}

// CountProductos counts catalog products. Products are never soft-deleted.
func (d *DB) CountProductos(ctx context.Context) ([]store.RecordCount, error) {
	var n int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&n); err != nil {
		return nil, err
	}
	return []store.RecordCount{{Collection: store.CollectionProductos, State: store.State(false), Count: n}}, nil
}

var (
	_ store.JobSearchResults   = (*DB)(nil)
	_ store.LanguageDetections = (*DB)(nil)
	_ store.Productos          = (*DB)(nil)
)

package compare

import (
	"context"
	"fmt"

	"field-comparator/core/utils"

	"gorm.io/gorm"
)

// rowSet is a key→value map built from a (key, value) or (key) result set.
type rowSet struct {
	values map[any]any
	// keys holds every distinct key in the order it was first read.
	keys []any
	// rows counts every row read, including skipped and duplicate ones.
	rows       int
	duplicates int
	nullKeys   int
}

func newRowSet() *rowSet {
	return &rowSet{values: make(map[any]any)}
}

func (s *rowSet) put(key, value any) {
	if _, ok := s.values[key]; ok {
		s.duplicates++
	} else {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *rowSet) merge(other *rowSet) {
	for _, k := range other.keys {
		s.put(k, other.values[k])
	}
	s.rows += other.rows
	s.duplicates += other.duplicates
	s.nullKeys += other.nullKeys
}

// scanRows streams the result of query to fn as normalised (key, value) pairs.
// Single column result sets yield a nil value. Rows whose key is NULL are
// skipped and counted. It returns the number of rows read.
func scanRows(ctx context.Context, db *gorm.DB, query string, args []any, fn func(key, value any) error) (rows, nullKeys int, err error) {
	sqlRows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: query failed: %w", ErrConnectivity, err)
	}
	defer sqlRows.Close()

	cols, err := sqlRows.Columns()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: read columns: %w", ErrData, err)
	}
	if len(cols) != 1 && len(cols) != 2 {
		return 0, 0, fmt.Errorf("%w: expected key and value columns, got %d columns", ErrData, len(cols))
	}

	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	for sqlRows.Next() {
		if err := sqlRows.Scan(ptrs...); err != nil {
			return rows, nullKeys, fmt.Errorf("%w: scan row: %w", ErrData, err)
		}
		rows++

		key := utils.Normalize(dest[0])
		if key == nil {
			nullKeys++
			continue
		}
		if !utils.IsHashable(key) {
			return rows, nullKeys, fmt.Errorf("%w: key of type %T cannot be compared", ErrData, key)
		}

		var value any
		if len(dest) == 2 {
			value = utils.Normalize(dest[1])
		}
		if err := fn(key, value); err != nil {
			return rows, nullKeys, err
		}
	}
	if err := sqlRows.Err(); err != nil {
		return rows, nullKeys, fmt.Errorf("%w: read rows: %w", ErrConnectivity, err)
	}
	return rows, nullKeys, nil
}

// fetchRows runs query and loads the whole result into a rowSet.
// Duplicate keys keep the last value read.
func fetchRows(ctx context.Context, db *gorm.DB, query string, args []any) (*rowSet, error) {
	set := newRowSet()
	rows, nulls, err := scanRows(ctx, db, query, args, func(key, value any) error {
		set.put(key, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	set.rows = rows
	set.nullKeys = nulls
	return set, nil
}

// fetchKeys runs a single column query and returns the set of keys.
func fetchKeys(ctx context.Context, db *gorm.DB, query string) (map[any]struct{}, error) {
	keys := make(map[any]struct{})
	_, _, err := scanRows(ctx, db, query, nil, func(key, _ any) error {
		keys[key] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func countRows(ctx context.Context, db *gorm.DB, query string) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).Raw(query).Row().Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count failed: %w", ErrConnectivity, err)
	}
	return n, nil
}

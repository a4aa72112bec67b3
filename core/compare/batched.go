package compare

import (
	"context"

	"field-comparator/core/sqlbuilder"

	"go.uber.org/zap"
)

// compareDirect loads both tables whole and diffs them.
func compareDirect(ctx context.Context, source, target *side, rule Rule, q *quality) ([]Difference, error) {
	src, err := fetchRows(ctx, source.db, sqlbuilder.Select(source.table, source.fields(), rule.Predicate), nil)
	if err != nil {
		return nil, err
	}
	tgt, err := fetchRows(ctx, target.db, sqlbuilder.Select(target.table, target.fields(), rule.Predicate), nil)
	if err != nil {
		return nil, err
	}
	q.source.add(src)
	q.target.add(tgt)
	return diffRowSets(src, tgt, rule.CompareField), nil
}

// batchComparator compares in two phases so neither table is held in memory whole.
//
// Phase 1 pages the source ordered by key and fetches the matching target rows
// with IN lookups, finding SourceOnly and ValueMismatch keys. Phase 2 loads the
// source key set and pages the target, finding TargetOnly keys.
type batchComparator struct {
	source   *side
	target   *side
	rule     Rule
	pageSize int
	quality  *quality
	logger   *zap.Logger

	seen  map[Identity]struct{}
	diffs []Difference
}

func newBatchComparator(source, target *side, rule Rule, pageSize int, q *quality, logger *zap.Logger) *batchComparator {
	return &batchComparator{
		source:   source,
		target:   target,
		rule:     rule,
		pageSize: pageSize,
		quality:  q,
		logger:   logger,
		seen:     make(map[Identity]struct{}),
	}
}

func (b *batchComparator) run(ctx context.Context) ([]Difference, error) {
	if err := b.compareSourcePages(ctx); err != nil {
		return nil, err
	}
	if err := b.findTargetOnly(ctx); err != nil {
		return nil, err
	}
	return b.diffs, nil
}

// add records differences not seen before.
func (b *batchComparator) add(diffs ...Difference) {
	for _, d := range diffs {
		id := d.Identity()
		if _, ok := b.seen[id]; ok {
			continue
		}
		b.seen[id] = struct{}{}
		b.diffs = append(b.diffs, d)
	}
}

func (b *batchComparator) compareSourcePages(ctx context.Context) error {
	// last is the final key of the previous page. Pages are ordered by key, so
	// a key repeated across a page boundary shows up as the next page's first key.
	var last any
	for offset, page := 0, 1; ; offset, page = offset+b.pageSize, page+1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		query := sqlbuilder.PagedSelect(b.source.table, b.source.fields(), b.rule.Predicate,
			b.source.key, offset, b.pageSize, b.source.dialect)
		src, err := fetchRows(ctx, b.source.db, query, nil)
		if err != nil {
			return err
		}
		tgt, err := b.fetchTargetByKeys(ctx, src.keys)
		if err != nil {
			return err
		}
		b.quality.source.add(src)

		if len(src.keys) > 0 {
			if last != nil && src.keys[0] == last {
				// The rows on this page were read later and supersede the earlier value.
				b.quality.source.duplicates++
				b.dropLast(last)
			}
			last = src.keys[len(src.keys)-1]
		}
		b.add(diffRowSets(src, tgt, b.rule.CompareField)...)

		b.logger.Debug("Compared source page",
			zap.Int("page", page),
			zap.Int("rows", src.rows),
			zap.Int("differences", len(b.diffs)))

		if src.rows < b.pageSize {
			return nil
		}
	}
}

// dropLast forgets the most recent difference when it belongs to key.
func (b *batchComparator) dropLast(key any) {
	n := len(b.diffs)
	if n == 0 || b.diffs[n-1].Key != key {
		return
	}
	delete(b.seen, b.diffs[n-1].Identity())
	b.diffs = b.diffs[:n-1]
}

// fetchTargetByKeys loads the target rows for keys, split into IN lists no
// larger than the target dialect's bind parameter limit.
func (b *batchComparator) fetchTargetByKeys(ctx context.Context, keys []any) (*rowSet, error) {
	out := newRowSet()
	chunk := b.target.dialect.MaxParams()
	for start := 0; start < len(keys); start += chunk {
		part := keys[start:min(start+chunk, len(keys))]
		where := sqlbuilder.And(sqlbuilder.InCondition(b.target.key, len(part)), b.rule.Predicate)
		set, err := fetchRows(ctx, b.target.db, sqlbuilder.Select(b.target.table, b.target.fields(), where), part)
		if err != nil {
			return nil, err
		}
		out.merge(set)
	}
	return out, nil
}

func (b *batchComparator) findTargetOnly(ctx context.Context) error {
	sourceKeys, err := fetchKeys(ctx, b.source.db,
		sqlbuilder.Select(b.source.table, []string{b.source.key}, b.rule.Predicate))
	if err != nil {
		return err
	}

	field := b.rule.CompareField
	// Target pages are ordered by key, so repeated keys arrive back to back.
	var prev any
	for offset := 0; ; offset += b.pageSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		query := sqlbuilder.PagedSelect(b.target.table, b.target.fields(), b.rule.Predicate,
			b.target.key, offset, b.pageSize, b.target.dialect)
		rows, nulls, err := scanRows(ctx, b.target.db, query, nil, func(key, value any) error {
			_, inSource := sourceKeys[key]
			if prev != nil && key == prev {
				b.quality.target.duplicates++
				if !inSource {
					b.replaceLastTarget(key, value)
				}
				return nil
			}
			prev = key
			if !inSource {
				b.add(Difference{Key: key, Kind: TargetOnly, TargetValue: value, FieldName: field})
			}
			return nil
		})
		if err != nil {
			return err
		}
		b.quality.target.nullKeys += nulls

		if rows < b.pageSize {
			return nil
		}
	}
}

// replaceLastTarget keeps the last value read for a repeated target-only key.
func (b *batchComparator) replaceLastTarget(key, value any) {
	n := len(b.diffs)
	if n > 0 && b.diffs[n-1].Key == key && b.diffs[n-1].Kind == TargetOnly {
		b.diffs[n-1].TargetValue = value
	}
}

package compare

import "field-comparator/core/utils"

// Diff classifies every key of the union of source and target:
// present only in source → SourceOnly, only in target → TargetOnly,
// in both with unequal values → ValueMismatch. Two NULLs are equal; a NULL
// against a value is a mismatch; a NULL against an absent key is one-sided.
func Diff(source, target map[any]any, field string) []Difference {
	sourceKeys := make([]any, 0, len(source))
	for k := range source {
		sourceKeys = append(sourceKeys, k)
	}
	targetKeys := make([]any, 0, len(target))
	for k := range target {
		targetKeys = append(targetKeys, k)
	}
	return diffKeys(sourceKeys, source, targetKeys, target, field)
}

func diffRowSets(source, target *rowSet, field string) []Difference {
	return diffKeys(source.keys, source.values, target.keys, target.values, field)
}

// diffKeys walks source keys then target keys so the output follows read order.
func diffKeys(sourceKeys []any, source map[any]any, targetKeys []any, target map[any]any, field string) []Difference {
	var diffs []Difference
	for _, k := range sourceKeys {
		sv := source[k]
		tv, ok := target[k]
		switch {
		case !ok:
			diffs = append(diffs, Difference{Key: k, Kind: SourceOnly, SourceValue: sv, FieldName: field})
		case !utils.Equal(sv, tv):
			diffs = append(diffs, Difference{Key: k, Kind: ValueMismatch, SourceValue: sv, TargetValue: tv, FieldName: field})
		}
	}
	for _, k := range targetKeys {
		if _, ok := source[k]; ok {
			continue
		}
		diffs = append(diffs, Difference{Key: k, Kind: TargetOnly, TargetValue: target[k], FieldName: field})
	}
	return diffs
}

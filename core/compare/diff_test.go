package compare_test

import (
	"testing"
	"time"

	"field-comparator/core/compare"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		source map[any]any
		target map[any]any
		want   []compare.Difference
	}{
		{
			name:   "Identical",
			source: map[any]any{int64(1): "a", int64(2): "b"},
			target: map[any]any{int64(1): "a", int64(2): "b"},
		},
		{
			name:   "Empty",
			source: map[any]any{},
			target: map[any]any{},
		},
		{
			name:   "Classification",
			source: map[any]any{int64(1): "a", int64(2): "b", int64(3): "c"},
			target: map[any]any{int64(1): "a", int64(2): "B", int64(4): "d"},
			want: []compare.Difference{
				{Key: int64(2), Kind: compare.ValueMismatch, SourceValue: "b", TargetValue: "B", FieldName: "email"},
				{Key: int64(3), Kind: compare.SourceOnly, SourceValue: "c", FieldName: "email"},
				{Key: int64(4), Kind: compare.TargetOnly, TargetValue: "d", FieldName: "email"},
			},
		},
		{
			name:   "Nulls",
			source: map[any]any{"k1": nil, "k2": nil, "k3": "x", "k4": nil},
			target: map[any]any{"k1": nil, "k2": "y", "k3": nil, "k5": nil},
			want: []compare.Difference{
				{Key: "k2", Kind: compare.ValueMismatch, SourceValue: nil, TargetValue: "y", FieldName: "email"},
				{Key: "k3", Kind: compare.ValueMismatch, SourceValue: "x", TargetValue: nil, FieldName: "email"},
				{Key: "k4", Kind: compare.SourceOnly, SourceValue: nil, FieldName: "email"},
				{Key: "k5", Kind: compare.TargetOnly, TargetValue: nil, FieldName: "email"},
			},
		},
		{
			name:   "Times Compare By Instant",
			source: map[any]any{int64(1): instant},
			target: map[any]any{int64(1): instant.In(time.FixedZone("CET", 3600))},
		},
		{
			name:   "Key Types Are Distinct",
			source: map[any]any{int64(1): "a"},
			target: map[any]any{"1": "a"},
			want: []compare.Difference{
				{Key: int64(1), Kind: compare.SourceOnly, SourceValue: "a", FieldName: "email"},
				{Key: "1", Kind: compare.TargetOnly, TargetValue: "a", FieldName: "email"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compare.Diff(tt.source, tt.target, "email")
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestDiff_KeysAppearOnce(t *testing.T) {
	source := map[any]any{}
	target := map[any]any{}
	for i := int64(0); i < 100; i++ {
		if i%2 == 0 {
			source[i] = i
		}
		if i%3 == 0 {
			target[i] = i + 1
		}
	}

	seen := make(map[any]int)
	for _, d := range compare.Diff(source, target, "v") {
		seen[d.Key]++
		assert.Equal(t, "v", d.FieldName)
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "key %v reported %d times", k, n)
	}
}

func TestDifference_Identity(t *testing.T) {
	a := compare.Difference{Key: int64(1), Kind: compare.ValueMismatch, SourceValue: "a", TargetValue: "b", FieldName: "email"}
	b := compare.Difference{Key: int64(1), Kind: compare.ValueMismatch, SourceValue: "x", TargetValue: "y", FieldName: "email"}
	c := compare.Difference{Key: int64(1), Kind: compare.SourceOnly, SourceValue: "a", FieldName: "email"}

	assert.Equal(t, a.Identity(), b.Identity())
	assert.NotEqual(t, a.Identity(), c.Identity())
}

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name           string
		source, target int64
		threshold      int
		want           compare.Strategy
	}{
		{"Both Below", 10, 20, 100, compare.StrategyDirect},
		{"Both At Threshold", 100, 100, 100, compare.StrategyDirect},
		{"Source Above", 101, 0, 100, compare.StrategyBatched},
		{"Target Above", 0, 1000, 100, compare.StrategyBatched},
		{"Empty", 0, 0, 0, compare.StrategyDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compare.SelectStrategy(tt.source, tt.target, tt.threshold))
		})
	}
}

package compare

// Kind classifies a difference.
type Kind string

const (
	// SourceOnly means the key exists only in the source table.
	SourceOnly Kind = "SOURCE_ONLY"
	// TargetOnly means the key exists only in the target table.
	TargetOnly Kind = "TARGET_ONLY"
	// ValueMismatch means the key exists on both sides with different values.
	ValueMismatch Kind = "VALUE_MISMATCH"
)

// Difference is one discrepancy for one key.
type Difference struct {
	Key         any    `json:"key"`
	Kind        Kind   `json:"kind"`
	SourceValue any    `json:"source_value"`
	TargetValue any    `json:"target_value"`
	FieldName   string `json:"field_name"`
}

// Identity is the de-duplication key of a Difference.
type Identity struct {
	Key       any
	Kind      Kind
	FieldName string
}

// Identity returns (Key, Kind, FieldName). Values do not take part.
func (d Difference) Identity() Identity {
	return Identity{Key: d.Key, Kind: d.Kind, FieldName: d.FieldName}
}

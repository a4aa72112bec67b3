package compare

// Strategy is the comparison algorithm chosen for a rule.
type Strategy string

const (
	// StrategyDirect loads both tables fully and diffs them in memory.
	StrategyDirect Strategy = "DIRECT"
	// StrategyBatched pages the source and probes the target by key.
	StrategyBatched Strategy = "BATCHED"
)

// SelectStrategy returns StrategyDirect iff both counts are at or below threshold.
func SelectStrategy(sourceCount, targetCount int64, threshold int) Strategy {
	t := int64(threshold)
	if sourceCount <= t && targetCount <= t {
		return StrategyDirect
	}
	return StrategyBatched
}

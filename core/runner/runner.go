package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"field-comparator/core/compare"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRuleNotFound is returned when a requested rule name is not configured.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrInvalidRuleSet is returned by New when the configured rules do not validate.
	ErrInvalidRuleSet = errors.New("invalid rule set")
)

// RuleExecutor runs a single rule.
type RuleExecutor interface {
	Execute(ctx context.Context, rule compare.Rule) *compare.Result
}

// ConnectionValidator reports reachability for every configured connection.
type ConnectionValidator interface {
	ValidateAll(ctx context.Context) map[string]bool
}

// Runner executes configured rules sequentially or on a bounded worker pool.
type Runner struct {
	rules     []compare.Rule
	index     map[string]int
	exec      RuleExecutor
	validator ConnectionValidator
	parallel  bool
	workers   int
	logger    *zap.Logger

	mu        sync.RWMutex
	jobs      map[string]*Job
	jobOrder  []string
	onJobDone []func(*Job)
}

// New validates cfg.Rules and returns a runner over them.
func New(cfg compare.Config, exec RuleExecutor, validator ConnectionValidator, logger *zap.Logger) (*Runner, error) {
	if err := compare.ValidateRules(cfg.Rules); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleSet, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	index := make(map[string]int, len(cfg.Rules))
	for i, r := range cfg.Rules {
		index[r.Name] = i
	}

	return &Runner{
		rules:     cfg.Rules,
		index:     index,
		exec:      exec,
		validator: validator,
		parallel:  cfg.Parallel,
		workers:   cfg.Workers(),
		logger:    logger,
		jobs:      make(map[string]*Job),
	}, nil
}

// RunAll executes every enabled rule. Results follow configuration order.
func (r *Runner) RunAll(ctx context.Context) []*compare.Result {
	var rules []compare.Rule
	for _, rule := range r.rules {
		if rule.IsEnabled() {
			rules = append(rules, rule)
		}
	}
	return r.execute(ctx, rules)
}

// Run executes a single rule by name, whether or not it is enabled.
func (r *Runner) Run(ctx context.Context, name string) (*compare.Result, error) {
	results, err := r.RunNamed(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// RunNamed executes the named rules in the given order. Every name is
// resolved before anything runs; an unknown name fails the whole call.
func (r *Runner) RunNamed(ctx context.Context, names []string) ([]*compare.Result, error) {
	rules := make([]compare.Rule, 0, len(names))
	for _, name := range names {
		i, ok := r.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrRuleNotFound, name)
		}
		rules = append(rules, r.rules[i])
	}
	return r.execute(ctx, rules), nil
}

// Has reports whether a rule with the given name is configured.
func (r *Runner) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// ValidateConnections reports reachability for every configured connection.
func (r *Runner) ValidateConnections(ctx context.Context) map[string]bool {
	if r.validator == nil {
		return map[string]bool{}
	}
	return r.validator.ValidateAll(ctx)
}

func (r *Runner) execute(ctx context.Context, rules []compare.Rule) []*compare.Result {
	start := time.Now()
	mode := "sequential"
	if r.parallel && len(rules) > 1 {
		mode = "parallel"
	}
	r.logger.Info("Comparison run started",
		zap.Int("rules", len(rules)),
		zap.String("mode", mode),
		zap.Int("workers", r.workers))

	results := make([]*compare.Result, len(rules))
	if mode == "sequential" {
		for i, rule := range rules {
			results[i] = r.exec.Execute(ctx, rule)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.workers)
		for i, rule := range rules {
			g.Go(func() error {
				results[i] = r.exec.Execute(ctx, rule)
				return nil
			})
		}
		_ = g.Wait()
	}

	counts := make(map[compare.Status]int)
	for _, res := range results {
		counts[res.Status()]++
	}
	r.logger.Info("Comparison run finished",
		zap.Int("succeeded", counts[compare.StatusSuccess]),
		zap.Int("partial", counts[compare.StatusPartial]),
		zap.Int("failed", counts[compare.StatusFailed]),
		zap.Duration("elapsed", time.Since(start)))

	return results
}

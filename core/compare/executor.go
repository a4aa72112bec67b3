package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"field-comparator/core/database"
	"field-comparator/core/logger"
	"field-comparator/core/sqlbuilder"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Connections resolves a configured connection name to a database handle.
type Connections interface {
	Get(ctx context.Context, name string) (*gorm.DB, error)
}

type phase int

const (
	phasePending phase = iota
	phaseValidating
	phaseCounting
	phaseComparing
	phaseFinalizing
	phaseSucceeded
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phasePending:
		return "pending"
	case phaseValidating:
		return "validating"
	case phaseCounting:
		return "counting"
	case phaseComparing:
		return "comparing"
	case phaseFinalizing:
		return "finalizing"
	case phaseSucceeded:
		return "succeeded"
	case phaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// execution tracks one rule as it moves through the executor phases.
type execution struct {
	rule   Rule
	phase  phase
	logger *zap.Logger
}

func (x *execution) enter(p phase, fields ...zap.Field) {
	x.logger.Debug("Rule phase",
		append([]zap.Field{zap.Stringer("from", x.phase), zap.Stringer("to", p)}, fields...)...)
	x.phase = p
}

type outcome struct {
	strategy    Strategy
	sourceCount int64
	targetCount int64
	differences []Difference
	warnings    []string
}

// Executor runs single rules against the configured connections.
type Executor struct {
	conns  Connections
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewExecutor creates an executor. cfg supplies the batch size, strategy
// threshold, schema validation switch and per-rule timeout.
func NewExecutor(conns Connections, cfg Config, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{conns: conns, cfg: cfg, logger: log, now: time.Now}
}

// Config returns the settings the executor was built with.
func (e *Executor) Config() Config {
	return e.cfg
}

// Execute runs rule to completion and always returns a result. Failures,
// including panics and timeouts, produce a FAILED result carrying the error
// message and no differences.
func (e *Executor) Execute(ctx context.Context, rule Rule) (res *Result) {
	log := logger.WithRule(e.logger, rule.Name)
	res = newResult(rule, e.now())
	x := &execution{rule: rule, phase: phasePending, logger: log}

	defer func() {
		if r := recover(); r != nil {
			failedIn := x.phase
			x.enter(phaseFailed)
			res.fail(fmt.Errorf("rule panicked in %s phase: %v", failedIn, r), e.now())
			log.Error("Rule panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	if timeout := e.cfg.RuleTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	o, err := e.execute(ctx, x)
	if err != nil {
		failedIn := x.phase
		x.enter(phaseFailed)
		res.fail(err, e.now())
		log.Warn("Rule failed",
			zap.Stringer("phase", failedIn),
			zap.Error(err),
			zap.Duration("elapsed", res.ExecutionTime()))
		return res
	}

	x.enter(phaseSucceeded)
	res.complete(o, e.now())
	log.Info("Rule completed",
		zap.String("status", string(res.Status())),
		zap.String("strategy", string(res.Strategy())),
		zap.Int64("source_count", res.SourceCount()),
		zap.Int64("target_count", res.TargetCount()),
		zap.Int("differences", res.DifferenceCount()),
		zap.Duration("elapsed", res.ExecutionTime()))
	return res
}

func (e *Executor) execute(ctx context.Context, x *execution) (*outcome, error) {
	rule := x.rule

	x.enter(phaseValidating)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	source, err := e.open(ctx, "source", rule.Source, rule)
	if err != nil {
		return nil, err
	}
	target, err := e.open(ctx, "target", rule.Target, rule)
	if err != nil {
		return nil, err
	}
	if e.cfg.ValidateSchema {
		if err := source.checkSchema(rule); err != nil {
			return nil, err
		}
		if err := target.checkSchema(rule); err != nil {
			return nil, err
		}
	}

	x.enter(phaseCounting)
	sourceCount, err := countRows(ctx, source.db, sqlbuilder.Count(source.table, rule.Predicate))
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	targetCount, err := countRows(ctx, target.db, sqlbuilder.Count(target.table, rule.Predicate))
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	strategy := SelectStrategy(sourceCount, targetCount, e.cfg.Threshold())
	x.enter(phaseComparing,
		zap.String("strategy", string(strategy)),
		zap.Int64("source_count", sourceCount),
		zap.Int64("target_count", targetCount))

	q := &quality{}
	var diffs []Difference
	switch strategy {
	case StrategyDirect:
		diffs, err = compareDirect(ctx, source, target, rule, q)
	default:
		diffs, err = newBatchComparator(source, target, rule, e.cfg.PageSize(), q, x.logger).run(ctx)
	}
	if err != nil {
		return nil, err
	}

	x.enter(phaseFinalizing)
	warnings := q.warnings()
	for _, w := range warnings {
		x.logger.Warn("Data quality warning", zap.String("warning", w))
	}
	return &outcome{
		strategy:    strategy,
		sourceCount: sourceCount,
		targetCount: targetCount,
		differences: diffs,
		warnings:    warnings,
	}, nil
}

func (e *Executor) open(ctx context.Context, label string, ref TableRef, rule Rule) (*side, error) {
	db, err := e.conns.Get(ctx, ref.Connection)
	if err != nil {
		if errors.Is(err, database.ErrUnknownConnection) || errors.Is(err, database.ErrUnsupportedDriver) {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfiguration, label, err)
		}
		return nil, fmt.Errorf("%w: %s connection %q: %w", ErrConnectivity, label, ref.Connection, err)
	}
	return newSide(label, ref, db, rule), nil
}

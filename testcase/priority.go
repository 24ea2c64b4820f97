package testcase

import (
	"context"
	"errors"

	"github.com/hairizuan-noorazman/testcase-service/logger"
)

// ErrStrategyNotSelected is returned when Apply is called on a Strategy
// that was not obtained from SelectStrategy.
var ErrStrategyNotSelected = errors.New("priority strategy not selected")

type applyFunc func(ctx context.Context, log logger.Logger, tc *TestCase)

// Strategy is the behaviour attached to a priority tier. Today every tier
// only records that it ran; it is the hook for priority-dependent work such
// as notification routing.
type Strategy struct {
	priority Priority
	apply    applyFunc
}

var strategies = map[Priority]applyFunc{
	PriorityHigh:   applyHighPriority,
	PriorityMedium: applyMediumPriority,
	PriorityLow:    applyLowPriority,
}

// SelectStrategy returns the strategy for the given priority.
func SelectStrategy(p Priority) (Strategy, error) {
	apply, ok := strategies[p]
	if !ok {
		return Strategy{}, ErrUnknownPriority
	}
	return Strategy{priority: p, apply: apply}, nil
}

// Priority returns the tier this strategy was selected for.
func (s Strategy) Priority() Priority {
	return s.priority
}

// Apply runs the strategy for tc.
func (s Strategy) Apply(ctx context.Context, log logger.Logger, tc *TestCase) error {
	if s.apply == nil {
		return ErrStrategyNotSelected
	}
	s.apply(ctx, log, tc)
	return nil
}

func applyHighPriority(ctx context.Context, log logger.Logger, tc *TestCase) {
	log.Info(ctx, "applying high priority strategy", map[string]interface{}{
		"title": tc.Title,
	})
}

func applyMediumPriority(ctx context.Context, log logger.Logger, tc *TestCase) {
	log.Info(ctx, "applying medium priority strategy", map[string]interface{}{
		"title": tc.Title,
	})
}

func applyLowPriority(ctx context.Context, log logger.Logger, tc *TestCase) {
	log.Info(ctx, "applying low priority strategy", map[string]interface{}{
		"title": tc.Title,
	})
}

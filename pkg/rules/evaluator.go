package rules

import (
	"log/slog"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
)

// Evaluator evaluates condition trees against fact documents. It is
// stateless apart from its logger and safe for concurrent use.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates a condition evaluator.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{logger: logger}
}

// Evaluate evaluates a top-level condition list against a fact document. The
// list is conjunctive: every condition must pass, and the first failing
// condition short-circuits. An empty list is vacuously true — callers must
// treat an empty rule as "always matches".
func (e *Evaluator) Evaluate(conds []Condition, facts map[string]any) bool {
	for i := range conds {
		if !e.evaluateNode(&conds[i], facts) {
			return false
		}
	}
	return true
}

// EvaluateEvent evaluates a condition list against an incident event's fact
// document.
func (e *Evaluator) EvaluateEvent(conds []Condition, ev *incident.Event) bool {
	if ev == nil {
		return e.Evaluate(conds, nil)
	}
	return e.Evaluate(conds, ev.Document())
}

// evaluateNode evaluates a single condition node. The and-group, or-group,
// and leaf comparison are independent checks; every part the node carries
// must pass.
func (e *Evaluator) evaluateNode(c *Condition, facts map[string]any) bool {
	if len(c.And) > 0 {
		for i := range c.And {
			if !e.evaluateNode(&c.And[i], facts) {
				return false
			}
		}
	}

	if len(c.Or) > 0 {
		anyMatched := false
		for i := range c.Or {
			if e.evaluateNode(&c.Or[i], facts) {
				anyMatched = true
				break
			}
		}
		if !anyMatched {
			return false
		}
	}

	// A node with no field but at least one group is a pure logical group;
	// the groups above already decided it.
	if !c.IsLeaf() {
		if c.IsGroup() {
			return true
		}
		e.logger.Warn("condition node has no field and no groups, evaluating false")
		return false
	}

	actual, found := resolveField(facts, c.Field)
	matched, err := evaluateOperator(c.Operator, actual, found, c.Value)
	if err != nil {
		e.logger.Warn("condition evaluated false",
			"field", c.Field,
			"operator", c.Operator,
			"error", err,
		)
		return false
	}

	e.logger.Debug("condition evaluated",
		"field", c.Field,
		"operator", c.Operator,
		"expected", c.Value,
		"actual", actual,
		"matched", matched,
	)

	return matched
}

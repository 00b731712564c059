// Package rules implements the condition evaluator: a pure, stateless
// predicate engine that evaluates trees of rule conditions against an
// incident's fact document.
//
// Condition trees arrive from the upstream rule-authoring subsystem as JSON
// and are immutable once constructed. A condition node is a leaf comparison
// (field operator value), an and/or group of child conditions, or both at
// once; when both are present every part must pass.
//
// Evaluation never panics and never returns an error: malformed data inside
// an otherwise well-shaped tree (unknown operators, invalid regex patterns,
// missing fields) logs a warning and evaluates false. "Did not match" and
// "could not evaluate" are deliberately collapsed — callers gate behavior on
// the boolean alone.
//
//	ev := rules.NewEvaluator(logger)
//	matched := ev.EvaluateEvent(conds, event)
//
// The evaluator holds no mutable state and is safe for concurrent use.
package rules

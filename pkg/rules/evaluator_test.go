package rules

import (
	"io"
	"log/slog"
	"testing"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/incident"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEvaluator_EmptyConditions(t *testing.T) {
	ev := newTestEvaluator()

	if !ev.Evaluate(nil, map[string]any{"severity": "heavy"}) {
		t.Error("empty condition list should be vacuously true")
	}
	if !ev.Evaluate([]Condition{}, nil) {
		t.Error("empty condition list against nil facts should be true")
	}
}

func TestEvaluator_TopLevelConjunction(t *testing.T) {
	ev := newTestEvaluator()
	conds := []Condition{
		{Field: "severity", Operator: OperatorEqual, Value: "heavy"},
		{Field: "lapNumber", Operator: OperatorGreaterThan, Value: 5},
	}

	tests := []struct {
		name  string
		facts map[string]any
		want  bool
	}{
		{"both pass", map[string]any{"severity": "heavy", "lapNumber": 10}, true},
		{"second fails", map[string]any{"severity": "heavy", "lapNumber": 3}, false},
		{"first fails", map[string]any{"severity": "medium", "lapNumber": 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.Evaluate(conds, tt.facts); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluator_OrGroup(t *testing.T) {
	ev := newTestEvaluator()
	conds := []Condition{{
		Or: []Condition{
			{Field: "a", Operator: OperatorEqual, Value: 1},
			{Field: "a", Operator: OperatorEqual, Value: 2},
		},
	}}

	if !ev.Evaluate(conds, map[string]any{"a": 2}) {
		t.Error("or group should match when one branch matches")
	}
	if ev.Evaluate(conds, map[string]any{"a": 3}) {
		t.Error("or group should not match when no branch matches")
	}
}

func TestEvaluator_AndGroup(t *testing.T) {
	ev := newTestEvaluator()
	conds := []Condition{{
		And: []Condition{
			{Field: "severity", Operator: OperatorEqual, Value: "heavy"},
			{Field: "type", Operator: OperatorEqual, Value: "contact"},
		},
	}}

	if !ev.Evaluate(conds, map[string]any{"severity": "heavy", "type": "contact"}) {
		t.Error("and group should match when all branches match")
	}
	if ev.Evaluate(conds, map[string]any{"severity": "heavy", "type": "spin"}) {
		t.Error("and group should not match when one branch fails")
	}
}

// TestEvaluator_GroupOnlyNode documents a deliberate divergence from the
// observed behavior: a node with an empty field and nested groups is a pure
// logical group and the missing leaf is skipped instead of failing the node.
func TestEvaluator_GroupOnlyNode(t *testing.T) {
	ev := newTestEvaluator()
	conds := []Condition{{
		Or: []Condition{
			{Field: "a", Operator: OperatorEqual, Value: 1},
		},
	}}

	if !ev.Evaluate(conds, map[string]any{"a": 1}) {
		t.Error("group-only node should pass on its groups alone")
	}
}

func TestEvaluator_LeafCombinedWithGroup(t *testing.T) {
	ev := newTestEvaluator()
	// Leaf and or-group on the same node: both must pass.
	conds := []Condition{{
		Field:    "severity",
		Operator: OperatorEqual,
		Value:    "heavy",
		Or: []Condition{
			{Field: "lapNumber", Operator: OperatorGreaterThan, Value: 5},
			{Field: "type", Operator: OperatorEqual, Value: "spin"},
		},
	}}

	if !ev.Evaluate(conds, map[string]any{"severity": "heavy", "lapNumber": 10}) {
		t.Error("leaf and group both passing should match")
	}
	if ev.Evaluate(conds, map[string]any{"severity": "light", "lapNumber": 10}) {
		t.Error("group passing but leaf failing should not match")
	}
	if ev.Evaluate(conds, map[string]any{"severity": "heavy", "lapNumber": 2, "type": "contact"}) {
		t.Error("leaf passing but group failing should not match")
	}
}

func TestEvaluator_EmptyNode(t *testing.T) {
	ev := newTestEvaluator()
	if ev.Evaluate([]Condition{{}}, map[string]any{"a": 1}) {
		t.Error("node with no field and no groups should evaluate false")
	}
}

func TestEvaluator_Operators(t *testing.T) {
	ev := newTestEvaluator()
	facts := map[string]any{
		"severity":    "heavy",
		"lapNumber":   10,
		"fault":       0.75,
		"cornerName":  "Turn 4",
		"contactType": nil,
	}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"eq string", Condition{Field: "severity", Operator: OperatorEqual, Value: "heavy"}, true},
		{"eq int vs float", Condition{Field: "lapNumber", Operator: OperatorEqual, Value: 10.0}, true},
		{"neq", Condition{Field: "severity", Operator: OperatorNotEqual, Value: "light"}, true},
		{"gt true", Condition{Field: "lapNumber", Operator: OperatorGreaterThan, Value: 5}, true},
		{"gt false", Condition{Field: "lapNumber", Operator: OperatorGreaterThan, Value: 10}, false},
		{"gt non-numeric", Condition{Field: "severity", Operator: OperatorGreaterThan, Value: 5}, false},
		{"gte boundary", Condition{Field: "lapNumber", Operator: OperatorGreaterEqual, Value: 10}, true},
		{"lt", Condition{Field: "fault", Operator: OperatorLessThan, Value: 0.8}, true},
		{"lte boundary", Condition{Field: "fault", Operator: OperatorLessEqual, Value: 0.75}, true},
		{"in match", Condition{Field: "severity", Operator: OperatorIn, Value: []any{"medium", "heavy"}}, true},
		{"in miss", Condition{Field: "severity", Operator: OperatorIn, Value: []any{"light", "medium"}}, false},
		{"in non-array", Condition{Field: "severity", Operator: OperatorIn, Value: "heavy"}, false},
		{"nin", Condition{Field: "severity", Operator: OperatorNotIn, Value: []any{"light", "medium"}}, true},
		{"nin member", Condition{Field: "severity", Operator: OperatorNotIn, Value: []any{"heavy"}}, false},
		{"contains", Condition{Field: "cornerName", Operator: OperatorContains, Value: "Turn"}, true},
		{"contains miss", Condition{Field: "cornerName", Operator: OperatorContains, Value: "Chicane"}, false},
		{"contains non-string", Condition{Field: "lapNumber", Operator: OperatorContains, Value: "1"}, false},
		{"regex match", Condition{Field: "cornerName", Operator: OperatorRegex, Value: `^Turn \d+$`}, true},
		{"regex miss", Condition{Field: "cornerName", Operator: OperatorRegex, Value: `^Chicane`}, false},
		{"unknown operator", Condition{Field: "severity", Operator: "like", Value: "heavy"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.Evaluate([]Condition{tt.cond}, facts); got != tt.want {
				t.Errorf("Evaluate(%+v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestEvaluator_RegexInvalidPattern(t *testing.T) {
	ev := newTestEvaluator()
	cond := Condition{Field: "cornerName", Operator: OperatorRegex, Value: "["}

	// Must evaluate false without panicking.
	if ev.Evaluate([]Condition{cond}, map[string]any{"cornerName": "Turn 1"}) {
		t.Error("invalid regex pattern should evaluate false")
	}
}

func TestEvaluator_Exists(t *testing.T) {
	ev := newTestEvaluator()
	facts := map[string]any{
		"cornerName":  "Turn 1",
		"contactType": nil,
	}

	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"present field, expect exists", Condition{Field: "cornerName", Operator: OperatorExists, Value: true}, true},
		{"present field, expect missing", Condition{Field: "cornerName", Operator: OperatorExists, Value: false}, false},
		{"missing field, expect exists", Condition{Field: "faultProbability", Operator: OperatorExists, Value: true}, false},
		{"missing field, expect missing", Condition{Field: "faultProbability", Operator: OperatorExists, Value: false}, true},
		{"null field, expect exists", Condition{Field: "contactType", Operator: OperatorExists, Value: true}, false},
		{"null field, expect missing", Condition{Field: "contactType", Operator: OperatorExists, Value: false}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.Evaluate([]Condition{tt.cond}, facts); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveField(t *testing.T) {
	facts := map[string]any{
		"severity": "heavy",
		"session": map[string]any{
			"track": map[string]any{"name": "Daytona"},
			"laps":  nil,
		},
	}

	tests := []struct {
		path      string
		want      any
		wantFound bool
	}{
		{"severity", "heavy", true},
		{"session.track.name", "Daytona", true},
		{"session.laps", nil, true},
		{"session.laps.total", nil, false}, // traversal through null stops
		{"session.track.length", nil, false},
		{"severity.nested", nil, false}, // non-map intermediate
		{"missing", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := resolveField(facts, tt.path)
			if found != tt.wantFound {
				t.Fatalf("resolveField(%q) found = %v, want %v", tt.path, found, tt.wantFound)
			}
			if found && got != tt.want {
				t.Errorf("resolveField(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestEvaluator_EvaluateEvent(t *testing.T) {
	ev := newTestEvaluator()
	event := &incident.Event{
		ID:        "inc-1",
		SessionID: "sess-1",
		LapNumber: 12,
		Type:      incident.TypeContact,
		Severity:  incident.SeverityHeavy,
		InvolvedDrivers: []incident.InvolvedDriver{
			{DriverID: "d1", Role: incident.RoleAggressor},
			{DriverID: "d2", Role: incident.RoleVictim},
		},
	}

	conds := []Condition{
		{Field: "severity", Operator: OperatorEqual, Value: "heavy"},
		{Field: "lapNumber", Operator: OperatorGreaterThan, Value: 5},
		{Field: "driverCount", Operator: OperatorGreaterEqual, Value: 2},
		{Field: "cornerName", Operator: OperatorExists, Value: false},
	}

	if !ev.EvaluateEvent(conds, event) {
		t.Error("event should match all conditions")
	}

	if !ev.EvaluateEvent(nil, nil) {
		t.Error("nil conditions against nil event should be vacuously true")
	}
}

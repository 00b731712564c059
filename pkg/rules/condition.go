package rules

// Operator is a comparison operator in a leaf condition. Dispatch is
// case-sensitive: "EQ" is not an operator.
type Operator string

const (
	OperatorEqual        Operator = "eq"
	OperatorNotEqual     Operator = "neq"
	OperatorGreaterThan  Operator = "gt"
	OperatorLessThan     Operator = "lt"
	OperatorGreaterEqual Operator = "gte"
	OperatorLessEqual    Operator = "lte"
	OperatorIn           Operator = "in"
	OperatorNotIn        Operator = "nin"
	OperatorContains     Operator = "contains"
	OperatorExists       Operator = "exists"
	OperatorRegex        Operator = "regex"
)

// Condition is one node of a rule tree. A node may carry a leaf comparison
// (Field/Operator/Value), nested And/Or groups, or both; all present parts
// are combined conjunctively. A node with an empty Field and at least one
// group is a pure logical group and its leaf is skipped.
type Condition struct {
	Field    string   `json:"field,omitempty" yaml:"field,omitempty"`
	Operator Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`

	And []Condition `json:"and,omitempty" yaml:"and,omitempty"`
	Or  []Condition `json:"or,omitempty" yaml:"or,omitempty"`
}

// IsLeaf reports whether the node carries a leaf comparison.
func (c *Condition) IsLeaf() bool {
	return c.Field != ""
}

// IsGroup reports whether the node carries nested and/or groups.
func (c *Condition) IsGroup() bool {
	return len(c.And) > 0 || len(c.Or) > 0
}

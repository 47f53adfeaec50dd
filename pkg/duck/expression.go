// Package duck holds the duck avatar's display state.
//
// The face itself is rendered by whatever is watching (the touchscreen page
// subscribes over websocket); this package only owns the current expression
// and the revert-after-delay behavior used by the empathy and speak flows.
package duck

// Expression is a duck face state.
type Expression string

const (
	ExpressionNeutral   Expression = "neutral"
	ExpressionConcerned Expression = "concerned"
	ExpressionListening Expression = "listening"
	ExpressionHappy     Expression = "happy"
)

// Expressions lists all known expressions.
var Expressions = []Expression{
	ExpressionNeutral,
	ExpressionConcerned,
	ExpressionListening,
	ExpressionHappy,
}

// Valid reports whether e is a known expression.
func (e Expression) Valid() bool {
	for _, known := range Expressions {
		if e == known {
			return true
		}
	}
	return false
}

// String returns the expression name.
func (e Expression) String() string {
	return string(e)
}

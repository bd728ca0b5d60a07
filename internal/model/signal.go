package model

import "time"

// Category is the trading decision of a run.
type Category string

const (
	Buy  Category = "BUY"
	Sell Category = "SELL"
	Hold Category = "HOLD"
)

// Qualifier annotates a decision without changing it.
type Qualifier string

const (
	NoQualifier Qualifier = ""
	StrongTrend Qualifier = "Strong Trend"
)

// SignalResult is the final output of the strategy engine.
type SignalResult struct {
	Symbol      string
	Category    Category
	Qualifier   Qualifier
	LatestPrice float64
	Snapshot    map[string]Reading
	Fired       []string // names of matched rules, in evaluation order
	EvaluatedAt time.Time
}

// Label renders the category with its qualifier, e.g. "BUY (Strong Trend)".
func (r *SignalResult) Label() string {
	if r.Qualifier == NoQualifier {
		return string(r.Category)
	}
	return string(r.Category) + " (" + string(r.Qualifier) + ")"
}

// Actionable reports whether the result should be alerted.
func (r *SignalResult) Actionable() bool {
	return r.Category != Hold
}

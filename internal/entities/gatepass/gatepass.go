package gatepass

import "math"

// Scopes of the repair gate pass lists
const (
	ScopePending  = "pending"
	ScopeReceived = "received"
	ScopeHistory  = "history"
)

// Counts are the repair gate pass totals shown on the dashboard
type Counts struct {
	Pending int `json:"pending"`
	History int `json:"history"`
}

// Rate is the share of processed gate passes, history over pending plus
// history, as a rounded percentage. 0 when there are none.
func (c Counts) Rate() int {
	total := c.Pending + c.History
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(c.History) / float64(total) * 100))
}

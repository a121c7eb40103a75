// messages.go defines Bubble Tea messages used for async communication.
//
// Generation and explain requests run in goroutines and send their
// results back via these message types, so the UI never blocks.
package tui

import "github.com/pgquill/pgquill/query"

// GenerateResultMsg is sent when a query generation completes.
type GenerateResultMsg struct {
	Result query.Result
	Output string // formatted per the response configuration
}

// ExplainResultMsg is sent when an EXPLAIN analysis completes.
type ExplainResultMsg struct {
	Result query.ExplainResult
}

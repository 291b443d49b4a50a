// internal/models/llm.go
package models

// LLMResult is the folded outcome of one prompt call.
type LLMResult struct {
	OK       bool        `json:"ok"`
	Provider string      `json:"provider"`
	Model    string      `json:"model,omitempty"`
	Text     string      `json:"text,omitempty"`
	Error    interface{} `json:"error,omitempty"`
}

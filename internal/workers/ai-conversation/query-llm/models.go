package queryllm

import (
	"time"

	"business-lookup/internal/models"
)

// Input is the Zeebe job variables.
type Input struct {
	Prompt   string `json:"prompt"`
	Provider string `json:"provider,omitempty"`
}

// CombinedResponse is the /query-llms body and its snapshot file.
type CombinedResponse struct {
	Prompt          string             `json:"prompt"`
	CheckedAt       time.Time          `json:"checkedAt"`
	Results         []models.LLMResult `json:"results"`
	CombinedSummary string             `json:"combinedSummary"`
}

type SingleResponse struct {
	Prompt    string           `json:"prompt"`
	CheckedAt time.Time        `json:"checkedAt"`
	Result    models.LLMResult `json:"result"`
}

// TextResponse is the reduced {ok, text|error} shape.
type TextResponse struct {
	OK    bool        `json:"ok"`
	Text  string      `json:"text,omitempty"`
	Error interface{} `json:"error,omitempty"`
}

func textResponse(r models.LLMResult) TextResponse {
	if !r.OK {
		return TextResponse{OK: false, Error: r.Error}
	}
	return TextResponse{OK: true, Text: r.Text}
}

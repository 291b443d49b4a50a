package queryllm

import (
	"net/http"

	apperrors "business-lookup/internal/common/errors"
	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/validation"

	"github.com/go-chi/chi/v5/middleware"
)

// HTTPHandler serves the prompt endpoints.
type HTTPHandler struct {
	service *Service
	logger  logger.Logger
}

func NewHTTPHandler(service *Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		logger:  log.With(map[string]interface{}{"component": "query-llm"}),
	}
}

// readPrompt returns the prompt and whether the body carried a usable one.
// It writes the 400 itself for malformed JSON and reports handled=true.
func (h *HTTPHandler) readPrompt(w http.ResponseWriter, r *http.Request) (prompt string, ok bool, handled bool) {
	var body interface{}
	if err := httpclient.DecodeBody(r, &body); err != nil {
		h.logger.Warn("rejected request body", map[string]interface{}{
			"requestId": middleware.GetReqID(r.Context()),
			"route":     r.URL.Path,
			"error":     err.Error(),
		})
		httpclient.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return "", false, true
	}
	if body == nil {
		return "", false, false
	}

	if res := validation.PromptSchema.Validate(body); !res.Valid {
		h.logger.Debug("prompt rejected", map[string]interface{}{
			"route":  r.URL.Path,
			"errors": res.Messages(),
		})
		return "", false, false
	}
	return body.(map[string]interface{})["prompt"].(string), true, false
}

// QueryLLMs handles POST /query-llms.
func (h *HTTPHandler) QueryLLMs(w http.ResponseWriter, r *http.Request) {
	prompt, ok, handled := h.readPrompt(w, r)
	if handled {
		return
	}
	if !ok {
		httpclient.WriteError(w, http.StatusBadRequest, "prompt required", "")
		return
	}

	out, err := h.service.QueryCombined(r.Context(), prompt)
	if err != nil {
		h.logger.Error("llm query failed", map[string]interface{}{
			"requestId": middleware.GetReqID(r.Context()),
			"error":     err.Error(),
		})
		httpclient.WriteError(w, http.StatusInternalServerError, "Server error", apperrors.Normalize(err).Details)
		return
	}
	httpclient.WriteJSON(w, http.StatusOK, out)
}

// QueryAnthropic handles POST /query-anthropic.
func (h *HTTPHandler) QueryAnthropic(w http.ResponseWriter, r *http.Request) {
	prompt, ok, handled := h.readPrompt(w, r)
	if handled {
		return
	}
	if !ok {
		httpclient.WriteError(w, http.StatusBadRequest, "prompt required", "")
		return
	}
	httpclient.WriteJSON(w, http.StatusOK, h.service.Anthropic(r.Context(), prompt))
}

// Gemini handles POST /api/gemini. Every outcome is a 200.
func (h *HTTPHandler) Gemini(w http.ResponseWriter, r *http.Request) {
	prompt, ok, handled := h.readPrompt(w, r)
	if handled {
		return
	}
	if !ok {
		httpclient.WriteJSON(w, http.StatusOK, TextResponse{OK: false, Error: "Prompt missing"})
		return
	}
	httpclient.WriteJSON(w, http.StatusOK, textResponse(h.service.Gemini(r.Context(), prompt)))
}

// OpenAI handles POST /api/openai.
func (h *HTTPHandler) OpenAI(w http.ResponseWriter, r *http.Request) {
	prompt, ok, handled := h.readPrompt(w, r)
	if handled {
		return
	}
	if !ok {
		httpclient.WriteJSON(w, http.StatusBadRequest, TextResponse{OK: false, Error: "Prompt is required"})
		return
	}

	result := h.service.OpenAI(r.Context(), prompt)
	status := http.StatusOK
	if !result.OK {
		status = http.StatusInternalServerError
	}
	httpclient.WriteJSON(w, status, textResponse(result))
}

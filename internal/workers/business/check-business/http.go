package checkbusiness

import (
	"net/http"

	httpclient "business-lookup/internal/common/http"
	"business-lookup/internal/common/logger"

	"github.com/go-chi/chi/v5/middleware"
)

// HTTPHandler serves POST /check-business. Provider failures never change
// the status code.
type HTTPHandler struct {
	service *Service
	logger  logger.Logger
}

func NewHTTPHandler(service *Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		logger:  log.With(map[string]interface{}{"route": "/check-business"}),
	}
}

func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := httpclient.DecodeBody(r, &input); err != nil {
		h.logger.Warn("rejected request body", map[string]interface{}{
			"requestId": middleware.GetReqID(r.Context()),
		})
		httpclient.WriteError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	resp := h.service.Execute(r.Context(), input.Query())

	h.logger.Debug("responding", map[string]interface{}{
		"requestId": middleware.GetReqID(r.Context()),
	})
	httpclient.WriteJSON(w, http.StatusOK, resp)
}

package http

import (
	"context"
	"net/http"

	"catalog-crud/internal/service"

	"go.opentelemetry.io/otel"
)

type HealthChecker interface {
	Check(ctx context.Context) service.HealthStatus
}

type HealthHandler struct {
	service HealthChecker
}

var HttpHealthHandlerTracer = otel.Tracer("HttpHealthHandler")

func NewHealthHandler(service HealthChecker) *HealthHandler {
	return &HealthHandler{
		service: service,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := HttpHealthHandlerTracer.Start(r.Context(), "HttpHealthHandler.Check")
	defer span.End()

	status := h.service.Check(ctx)

	overall := "UP"
	code := http.StatusOK
	if status.Store == "DOWN" {
		overall = "DOWN"
		code = http.StatusInternalServerError
	}

	writeJSON(w, code, map[string]interface{}{
		"status": overall,
		"data": map[string]string{
			status.Driver: status.Store,
		},
	})
}

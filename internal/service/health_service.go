package service

import (
	"context"
	"time"

	"catalog-crud/internal/logger"

	"go.opentelemetry.io/otel"
)

// Pinger is satisfied by both product repositories.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	store  Pinger
	driver string
}

type HealthStatus struct {
	Store  string
	Driver string
}

var HealthServiceTracer = otel.Tracer("HealthService")

func NewHealthService(store Pinger, driver string) *HealthService {
	return &HealthService{
		store:  store,
		driver: driver,
	}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	ctx, span := HealthServiceTracer.Start(ctx, "HealthService.Check")
	defer span.End()
	logger.Debug(ctx, "Service")

	status := HealthStatus{Store: "UP", Driver: s.driver}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.store.Ping(pingCtx); err != nil {
		logger.Warn(ctx, "Store ping failed")
		status.Store = "DOWN"
	}

	return status
}

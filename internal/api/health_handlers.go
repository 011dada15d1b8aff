package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// serviceName identifies this service in health responses.
const serviceName = "catalog-normalization-api"

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Health check",
		Description: "Returns service status and whether a lookup model is loaded",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status      string `json:"status" doc:"Service status"`
	Service     string `json:"service" doc:"Service name"`
	ModelLoaded bool   `json:"model_loaded" doc:"Whether a lookup model snapshot is active"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthResponse{
			Status:      "ok",
			Service:     serviceName,
			ModelLoaded: s.services.Models.Ready(),
		},
	}, nil
}

package input

import "line-knowledge-bot/internal/domain"

// IngestionLogService interface - Input port (use case)
// Defines what the admin API can do with the ingestion log
type IngestionLogService interface {
	GetIngestions(condition domain.QueryIngestionRequest) (*domain.IngestionListResponse, error)
	HealthCheck() error
}

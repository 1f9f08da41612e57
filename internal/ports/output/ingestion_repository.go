package output

import "line-knowledge-bot/internal/domain"

// IngestionRepository interface - Output port
// Defines what the application needs from ingestion log persistence
type IngestionRepository interface {
	CreateRecord(record *domain.IngestionRecord) (*domain.IngestionResponse, error)
	GetRecords(condition domain.QueryIngestionRequest) (*domain.IngestionListResponse, error)
	Ping() error
}

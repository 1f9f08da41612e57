package application

import (
	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/input"
	"line-knowledge-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ input.IngestionLogService = (*IngestionLogService)(nil)

// IngestionLogService struct - Application service implementing admin use cases
type IngestionLogService struct {
	repo output.IngestionRepository
}

// NewIngestionLogService func - Creates new ingestion log service. repo may be nil.
func NewIngestionLogService(repo output.IngestionRepository) *IngestionLogService {
	return &IngestionLogService{
		repo: repo,
	}
}

// HealthCheck func - Use case: check the database when one is configured
func (s *IngestionLogService) HealthCheck() error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Ping(); err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// GetIngestions func - Use case: list ingestion records with pagination and filtering
func (s *IngestionLogService) GetIngestions(condition domain.QueryIngestionRequest) (*domain.IngestionListResponse, error) {
	if s.repo == nil {
		return nil, domain.ErrIngestionLogDisabled
	}

	var (
		page    int
		perPage int
	)
	if condition.Page != nil && *condition.Page > 0 {
		page = *condition.Page
	} else {
		page = 1
	}
	condition.Page = &page

	if condition.Limit != nil && *condition.Limit > 0 {
		perPage = *condition.Limit
	} else {
		perPage = 100
	}
	condition.Limit = &perPage

	condition.Pagination = &domain.Pagination{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	}

	asc := false
	if condition.Asc != nil {
		asc = *condition.Asc
	}
	orderBy := "created_at"
	if condition.OrderBy != nil {
		orderBy = *condition.OrderBy
	}
	condition.SortMethod = &domain.SortMethod{
		Asc:     asc,
		OrderBy: orderBy,
	}

	return s.repo.GetRecords(condition)
}

package postgres

import (
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var _ output.IngestionRepository = (*IngestionRepository)(nil)

var sortableColumns = map[string]bool{
	"created_at":   true,
	"logical_id":   true,
	"display_name": true,
	"outcome":      true,
}

// IngestionRepository struct - Secondary/Driven adapter for PostgreSQL
type IngestionRepository struct {
	dbGorm *gorm.DB
}

// NewIngestionRepository func - Creates new PostgreSQL repository
func NewIngestionRepository(dbGorm *gorm.DB) *IngestionRepository {
	domain.MigrateDatabase(dbGorm)
	return &IngestionRepository{
		dbGorm: dbGorm,
	}
}

// CreateRecord func - Appends an ingestion attempt to the log
func (p *IngestionRepository) CreateRecord(record *domain.IngestionRecord) (*domain.IngestionResponse, error) {
	if record.CreatedAt == nil {
		now := time.Now().UTC()
		record.CreatedAt = &now
	}
	if err := p.dbGorm.Create(record).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	response := toResponse(*record)
	return &response, nil
}

// GetRecords func - Retrieves ingestion records with filtering and pagination
func (p *IngestionRepository) GetRecords(condition domain.QueryIngestionRequest) (*domain.IngestionListResponse, error) {
	var (
		record  domain.IngestionRecord
		records []domain.IngestionRecord
	)
	tx := p.dbGorm.Model(&record).Where(p.condition(condition))

	var totalItem int64
	if err := tx.Count(&totalItem).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	if condition.ID == nil {
		order := "created_at"
		if condition.SortMethod != nil && sortableColumns[condition.SortMethod.OrderBy] {
			order = condition.SortMethod.OrderBy
		}
		if condition.SortMethod != nil && condition.SortMethod.Asc {
			tx = tx.Order(order + " ASC")
		} else {
			tx = tx.Order(order + " DESC")
		}
		if condition.Pagination != nil {
			tx = tx.Limit(condition.Pagination.Limit).Offset(condition.Pagination.Offset)
		}
	}

	if err := tx.Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	result := domain.IngestionListResponse{
		Records:     []domain.IngestionResponse{},
		CurrentPage: condition.Page,
		TotalItem:   &totalItem,
	}
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	for _, r := range records {
		result.Records = append(result.Records, toResponse(r))
	}
	return &result, nil
}

// Ping func - Checks the database connection
func (p *IngestionRepository) Ping() error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (p *IngestionRepository) condition(condition domain.QueryIngestionRequest) map[string]interface{} {
	expression := make(map[string]interface{})
	if condition.ID != nil {
		expression["id"] = *condition.ID
	}
	if condition.LogicalID != nil {
		expression["logical_id"] = *condition.LogicalID
	}
	if condition.Outcome != nil {
		expression["outcome"] = *condition.Outcome
	}
	return expression
}

func toResponse(r domain.IngestionRecord) domain.IngestionResponse {
	return domain.IngestionResponse{
		ID:          r.ID,
		LogicalID:   r.LogicalID,
		DisplayName: r.DisplayName,
		SourceExt:   r.SourceExt,
		Outcome:     r.Outcome,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// IngestionOutcome type
type IngestionOutcome string

const (
	// IngestionOutcomeSucceeded const
	IngestionOutcomeSucceeded IngestionOutcome = "SUCCEEDED"
	// IngestionOutcomeRejected const
	IngestionOutcomeRejected IngestionOutcome = "REJECTED"
	// IngestionOutcomeConversionFailed const
	IngestionOutcomeConversionFailed IngestionOutcome = "CONVERSION_FAILED"
	// IngestionOutcomeTimeout const
	IngestionOutcomeTimeout IngestionOutcome = "TIMEOUT"
	// IngestionOutcomeFailed const
	IngestionOutcomeFailed IngestionOutcome = "FAILED"
)

// IngestionRecord struct - one document ingestion attempt
type IngestionRecord struct {
	ID          *uuid.UUID       `gorm:"type:uuid;primary_key;"`
	LogicalID   string           `gorm:"type:varchar(100);not null;index"`
	DisplayName string           `gorm:"type:text;not null;"`
	SourceExt   string           `gorm:"type:varchar(16)"`
	Outcome     IngestionOutcome `gorm:"type:varchar(20);not null;index"`
	Reason      string           `gorm:"type:text"`
	CreatedAt   *time.Time       `gorm:"type:timestamp"`
}

// TableName func
func (r *IngestionRecord) TableName() string {
	return "ingestion_records"
}

// BeforeCreate hook - generates UUID before creating
func (r *IngestionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID != nil {
		return nil
	}
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	r.ID = &id
	return nil
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	logrus.Info("Migrate database ...")
	err := db.AutoMigrate(&IngestionRecord{})
	if err != nil {
		panic(err)
	}
}

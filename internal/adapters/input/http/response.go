package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, Ingestion log is not enabled"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	CurrentPage *int   `json:"current_page,omitempty"`
	PerPage     *int   `json:"per_page,omitempty"`
	TotalItem   *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

// IngestionResponse struct - HTTP response DTO for a single ingestion record
type IngestionResponse struct {
	ID          *uuid.UUID `json:"id,omitempty" mapstructure:"id"`
	LogicalID   string     `json:"logical_id" mapstructure:"logical_id"`
	DisplayName string     `json:"display_name" mapstructure:"display_name"`
	SourceExt   string     `json:"source_ext,omitempty" mapstructure:"source_ext"`
	Outcome     string     `json:"outcome" mapstructure:"outcome"`
	Reason      string     `json:"reason,omitempty" mapstructure:"reason"`
	CreatedAt   *time.Time `json:"created_at,omitempty" mapstructure:"created_at"`
}

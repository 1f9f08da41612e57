package http

import "github.com/google/uuid"

type (
	// QueryIngestionRequest struct - HTTP query request DTO
	QueryIngestionRequest struct {
		ID        *uuid.UUID `json:"id" form:"id" query:"id"`
		LogicalID *string    `json:"logical_id" validate:"omitempty,max=100" form:"logical_id" query:"logical_id"`
		Outcome   *string    `json:"outcome" validate:"omitempty,oneof=SUCCEEDED REJECTED CONVERSION_FAILED TIMEOUT FAILED" form:"outcome" query:"outcome"`

		Limit   *int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=100" form:"limit" query:"limit"`
		Page    *int    `json:"page,omitempty" validate:"omitempty,gte=1" form:"page" query:"page"`
		OrderBy *string `json:"order_by,omitempty" validate:"omitempty,oneof=created_at display_name logical_id outcome" form:"order_by" query:"order_by"`
		Asc     *bool   `json:"asc,omitempty" form:"asc" query:"asc"`
	}
)

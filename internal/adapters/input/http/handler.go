package http

import (
	"errors"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/input"
	"line-knowledge-bot/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for the admin HTTP API
type HTTPHandler struct {
	srv       input.IngestionLogService
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.IngestionLogService) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		validator: validator.New(),
	}
}

// HealthCheck func
// HealthCheck godoc
// @Summary Health check
// @Description Reports readiness, pinging the database when the ingestion log is enabled
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.srv.HealthCheck(); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// GetIngestions func
/* list ingestion records */
// GetIngestions godoc
// @Summary List ingestion records
// @Description List document ingestion attempts with filtering and pagination
// @Tags Ingestion
// @Accept application/json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/ingestions [get]
// @Produce json
// @param id path string false "uuid"
// @param logical_id query string false "logical store id, e.g. user_U123"
// @param outcome query string false "SUCCEEDED, REJECTED, CONVERSION_FAILED, TIMEOUT or FAILED"
// @param page query int false "page"
// @param limit query int false "limit"
// @param order_by query string false "created_at, display_name, logical_id or outcome"
// @param asc query bool false "asc"
func (hdl *HTTPHandler) GetIngestions(c *fiber.Ctx) error {
	condition := QueryIngestionRequest{}
	if err := c.QueryParser(&condition); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	if err := hdl.validator.ValidateStruct(condition); err != nil {
		logrus.Errorln(err)
		msg := ResponseBody{Status: BadRequest}
		msg.Status.Message = validator.Messages(err)
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	if id := c.Params("id"); id != "" {
		uid, err := uuid.Parse(id)
		if err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
		}
		condition.ID = &uid
	}

	// Convert HTTP query request to domain query request
	domainCondition := domain.QueryIngestionRequest{
		ID:        condition.ID,
		LogicalID: condition.LogicalID,
		Outcome:   condition.Outcome,
		Limit:     condition.Limit,
		Page:      condition.Page,
		OrderBy:   condition.OrderBy,
		Asc:       condition.Asc,
	}
	result, err := hdl.srv.GetIngestions(domainCondition)
	if errors.Is(err, domain.ErrIngestionLogDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	}
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	data := make([]IngestionResponse, 0, len(result.Records))
	for _, record := range result.Records {
		data = append(data, IngestionResponse{
			ID:          record.ID,
			LogicalID:   record.LogicalID,
			DisplayName: record.DisplayName,
			SourceExt:   record.SourceExt,
			Outcome:     string(record.Outcome),
			Reason:      record.Reason,
			CreatedAt:   record.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        data,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		TotalItem:   result.TotalItem,
	})
}

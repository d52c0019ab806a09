package handlers

import (
	"context"
	"fmt"
	"strconv"

	businessflow "github.com/amirphl/Yata-no-Kagami/business_flow"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalyticsHandlerInterface defines the analytics read endpoints
type AnalyticsHandlerInterface interface {
	Summary(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

type AnalyticsHandler struct {
	analyticsFlow businessflow.AnalyticsFlow
	exportFlow    businessflow.AnalyticsExportFlow
}

func NewAnalyticsHandler(analyticsFlow businessflow.AnalyticsFlow, exportFlow businessflow.AnalyticsExportFlow) AnalyticsHandlerInterface {
	return &AnalyticsHandler{analyticsFlow: analyticsFlow, exportFlow: exportFlow}
}

// Summary returns scan analytics for a QR code
// @Summary QR Code Analytics
// @Description Total scans, daily time series and device, browser and location breakdowns
// @Tags Analytics
// @Produce json
// @Param qrId path int true "QR code ID"
// @Success 200 {object} dto.AnalyticsResponse "Analytics summary"
// @Failure 400 {object} dto.APIResponse "Invalid QR code ID"
// @Failure 404 {object} dto.APIResponse "QR code not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/analytics/{qrId} [get]
func (h *AnalyticsHandler) Summary(c fiber.Ctx) error {
	id, ok := parseQRCodeID(c.Params("qrId"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, businessflow.ErrQRCodeIDInvalid.Error(), businessflow.CodeValidation, nil)
	}

	ctx, cancel := createRequestContext(c, fmt.Sprintf("/api/analytics/%d", id))
	defer cancel()

	result, err := h.analyticsFlow.Summarize(ctx, id)
	if err != nil {
		return h.handleError(ctx, c, id, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Export downloads scan analytics as an Excel workbook
// @Summary Export QR Code Analytics
// @Tags Analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param qrId path int true "QR code ID"
// @Success 200 {file} file "XLSX workbook"
// @Failure 400 {object} dto.APIResponse "Invalid QR code ID"
// @Failure 404 {object} dto.APIResponse "QR code not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/analytics/{qrId}/export [get]
func (h *AnalyticsHandler) Export(c fiber.Ctx) error {
	id, ok := parseQRCodeID(c.Params("qrId"))
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, businessflow.ErrQRCodeIDInvalid.Error(), businessflow.CodeValidation, nil)
	}

	ctx, cancel := createRequestContext(c, fmt.Sprintf("/api/analytics/%d/export", id))
	defer cancel()

	filename, data, err := h.exportFlow.Export(ctx, id)
	if err != nil {
		return h.handleError(ctx, c, id, err)
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Status(fiber.StatusOK).Send(data)
}

func (h *AnalyticsHandler) handleError(ctx context.Context, c fiber.Ctx, id uint, err error) error {
	if businessflow.IsQRCodeNotFound(err) {
		return errorResponse(c, fiber.StatusNotFound, "QR code not found", businessflow.CodeQRCodeNotFound, nil)
	}
	logFlowError(ctx, "Analytics request failed", err, "qr_code_id", id)
	return errorResponse(c, fiber.StatusInternalServerError, "Failed to load analytics", businessErrorCode(err, "INTERNAL_ERROR"), nil)
}

func parseQRCodeID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

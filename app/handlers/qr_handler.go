package handlers

import (
	"errors"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	businessflow "github.com/amirphl/Yata-no-Kagami/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// QRHandlerInterface defines the contract for QR code generation
type QRHandlerInterface interface {
	Generate(c fiber.Ctx) error
}

type QRHandler struct {
	flow      businessflow.QRFlow
	validator *validator.Validate
}

func NewQRHandler(flow businessflow.QRFlow) QRHandlerInterface {
	return &QRHandler{flow: flow, validator: newValidator()}
}

// Generate issues a short code and returns its QR image
// @Summary Generate QR Code
// @Description Issue a short code for the target URL and render a PNG QR image encoding the short URL
// @Tags QR
// @Accept json
// @Produce json
// @Param request body dto.GenerateQRRequest true "Target URL and optional colors"
// @Success 201 {object} dto.GenerateQRResponse "QR code generated"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Short code retries exhausted or storage failure"
// @Router /api/qr/generate [post]
func (h *QRHandler) Generate(c fiber.Ctx) error {
	var req dto.GenerateQRRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", businessflow.CodeValidation, validationMessages(err))
	}

	ctx, cancel := createRequestContext(c, "/api/qr/generate")
	defer cancel()

	result, err := h.flow.Generate(ctx, &req)
	if err != nil {
		if businessflow.IsValidationError(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Validation failed", businessflow.CodeValidation, []string{validationCause(err)})
		}
		if businessflow.IsShortCodeRetryExhausted(err) {
			logFlowError(ctx, "QR generation failed", err)
			return errorResponse(c, fiber.StatusInternalServerError, "Could not allocate a short code, please retry", businessflow.CodeShortCodeRetryExhausted, nil)
		}

		logFlowError(ctx, "QR generation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "QR generation failed", businessErrorCode(err, "QR_GENERATION_FAILED"), nil)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func validationCause(err error) string {
	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

func businessErrorCode(err error, fallback string) string {
	var be *businessflow.BusinessError
	if errors.As(err, &be) && be.Code != "" {
		return be.Code
	}
	return fallback
}

// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	businessflow "github.com/amirphl/Yata-no-Kagami/business_flow"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	fiberutils "github.com/gofiber/utils/v2"
)

const defaultRequestTimeout = 10 * time.Second

var hexColor6 = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// newValidator returns a validator with the custom tags used by the request DTOs
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColor6.MatchString(fl.Field().String())
	})
	return v
}

func validationMessages(err error) []string {
	var messages []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			messages = append(messages, getValidationErrorMessage(fe))
		}
		return messages
	}
	return []string{err.Error()}
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "url":
		return err.Field() + " must be an absolute URL"
	case "hexcolor6":
		return err.Field() + " must be a color in #RRGGBB form"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

func errorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func successResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// createRequestContext detaches the flow from the fasthttp request context, which is recycled after the handler returns
func createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return createRequestContextWithTimeout(c, endpoint, defaultRequestTimeout)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, fiberutils.CopyString(requestid.FromContext(c)))
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	return ctx, cancel
}

// logFlowError logs a failed flow call with the request scope carried by ctx
func logFlowError(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs,
		"request_id", utils.RequestIDFromContext(ctx),
		"endpoint", utils.EndpointFromContext(ctx),
		"persistence", businessflow.IsPersistenceError(err),
		"error", err,
	)
	slog.ErrorContext(ctx, msg, attrs...)
}

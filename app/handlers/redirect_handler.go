package handlers

import (
	"net/url"
	"strings"

	businessflow "github.com/amirphl/Yata-no-Kagami/business_flow"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// RedirectHandlerInterface defines contract for public short code visits
type RedirectHandlerInterface interface {
	Visit(c fiber.Ctx) error
}

type RedirectHandler struct {
	flow     businessflow.RedirectFlow
	tracking config.TrackingConfig
}

func NewRedirectHandler(flow businessflow.RedirectFlow, tracking config.TrackingConfig) RedirectHandlerInterface {
	return &RedirectHandler{flow: flow, tracking: tracking}
}

// Visit resolves a short code and redirects
// @Summary Visit Short Code
// @Description Redirects to the target URL of the QR code; the scan is recorded asynchronously
// @Tags Redirect
// @Param shortCode path string true "Short code"
// @Success 302 {string} string "Redirect"
// @Failure 404 {object} dto.APIResponse "Unknown short code"
// @Failure 500 {object} dto.APIResponse "Internal error"
// @Router /r/{shortCode} [get]
func (h *RedirectHandler) Visit(c fiber.Ctx) error {
	shortCode := c.Params("shortCode")

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get(fiber.HeaderUserAgent))
	metadata.SetRequestID(requestid.FromContext(c))
	metadata.SetLocation(h.location(c))

	ctx, cancel := createRequestContext(c, "/r/"+shortCode)
	defer cancel()

	target, err := h.flow.Visit(ctx, shortCode, metadata)
	if err != nil {
		if businessflow.IsQRCodeNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Short code not found", businessflow.CodeQRCodeNotFound, nil)
		}
		logFlowError(ctx, "Visit short code failed", err, "short_code", shortCode)
		return errorResponse(c, fiber.StatusInternalServerError, "Redirect failed", businessErrorCode(err, "INTERNAL_ERROR"), nil)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Redirect().Status(fiber.StatusFound).To(target)
}

// location reads the edge geolocation headers; city values arrive percent-encoded
func (h *RedirectHandler) location(c fiber.Ctx) *businessflow.LocationInfo {
	country := strings.TrimSpace(c.Get(h.tracking.CountryHeader))
	if country == "" && h.tracking.FallbackCountryHeader != "" {
		country = strings.TrimSpace(c.Get(h.tracking.FallbackCountryHeader))
	}

	city := strings.TrimSpace(c.Get(h.tracking.CityHeader))
	if decoded, err := url.QueryUnescape(city); err == nil {
		city = decoded
	}

	if country == "" && city == "" {
		return nil
	}
	return &businessflow.LocationInfo{Country: country, City: city}
}

package businessflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/app/services"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/utils"
)

// QRFlow handles the generator use case: issue a short code and render its QR image
type QRFlow interface {
	Generate(ctx context.Context, req *dto.GenerateQRRequest) (*dto.GenerateQRResponse, error)
}

type QRFlowImpl struct {
	registry ShortCodeRegistry
	renderer services.QRRenderer
	baseURL  string
	logger   *slog.Logger
}

func NewQRFlow(registry ShortCodeRegistry, renderer services.QRRenderer, deployment config.DeploymentConfig, logger *slog.Logger) QRFlow {
	if logger == nil {
		logger = slog.Default()
	}
	return &QRFlowImpl{
		registry: registry,
		renderer: renderer,
		baseURL:  strings.TrimRight(deployment.BaseURL, "/"),
		logger:   logger,
	}
}

// Generate defaults missing colors to black on white. The QR image encodes the short URL,
// never the target, so every scan goes through the redirect. The image is rendered
// before the row is written; a code that cannot be drawn is never stored.
func (f *QRFlowImpl) Generate(ctx context.Context, req *dto.GenerateQRRequest) (*dto.GenerateQRResponse, error) {
	if req == nil {
		return nil, NewValidationError(ErrTargetURLRequired)
	}

	fg := strings.TrimSpace(req.FgColor)
	if fg == "" {
		fg = models.DefaultFgColor
	}
	bg := strings.TrimSpace(req.BgColor)
	if bg == "" {
		bg = models.DefaultBgColor
	}

	var shortURL, dataURL string
	qr, err := f.registry.IssueWith(ctx, req.TargetURL, fg, bg, func(candidate *models.QRCode) error {
		shortURL = fmt.Sprintf("%s/r/%s", f.baseURL, candidate.ShortCode)
		rendered, err := f.renderer.RenderDataURL(shortURL, candidate.FgColor, candidate.BgColor)
		if err != nil {
			f.logger.Error("qr render failed",
				"short_code", candidate.ShortCode,
				"request_id", utils.RequestIDFromContext(ctx),
				"error", err)
			return NewBusinessError(CodeQRRenderFailed, "Failed to render QR code", err)
		}
		dataURL = rendered
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.GenerateQRResponse{
		ID:            qr.ID,
		ShortCode:     qr.ShortCode,
		ShortURL:      shortURL,
		QRCodeDataURL: dataURL,
		AnalyticsURL:  fmt.Sprintf("%s/analytics/%d", f.baseURL, qr.ID),
	}, nil
}

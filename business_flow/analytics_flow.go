package businessflow

import (
	"context"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/repository"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"golang.org/x/sync/errgroup"
)

// AnalyticsFlow computes the dashboard summary of a QR code
type AnalyticsFlow interface {
	Summarize(ctx context.Context, qrCodeID uint) (*dto.AnalyticsResponse, error)
}

type AnalyticsFlowImpl struct {
	registry ShortCodeRegistry
	scanRepo repository.ScanRepository
}

func NewAnalyticsFlow(registry ShortCodeRegistry, scanRepo repository.ScanRepository) AnalyticsFlow {
	return &AnalyticsFlowImpl{registry: registry, scanRepo: scanRepo}
}

// Summarize runs the five aggregates concurrently. The total is always counted
// from scans, never taken from qr_codes.scan_count.
func (f *AnalyticsFlowImpl) Summarize(ctx context.Context, qrCodeID uint) (*dto.AnalyticsResponse, error) {
	if _, err := f.registry.ByID(ctx, qrCodeID); err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		ScansByDate:       make([]dto.DateCountDTO, 0),
		DeviceBreakdown:   make([]dto.DeviceCountDTO, 0),
		BrowserBreakdown:  make([]dto.BrowserCountDTO, 0),
		LocationBreakdown: make([]dto.LocationCountDTO, 0),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := f.scanRepo.CountByQRCode(gctx, qrCodeID)
		if err != nil {
			return err
		}
		resp.TotalScans = total
		return nil
	})

	g.Go(func() error {
		rows, err := f.scanRepo.CountByDate(gctx, qrCodeID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			resp.ScansByDate = append(resp.ScansByDate, dto.DateCountDTO{Date: r.Date, Count: r.Count})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := f.scanRepo.CountByDevice(gctx, qrCodeID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			resp.DeviceBreakdown = append(resp.DeviceBreakdown, dto.DeviceCountDTO{DeviceType: r.DeviceType, Count: r.Count})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := f.scanRepo.TopBrowsers(gctx, qrCodeID, utils.TopBrowsersLimit)
		if err != nil {
			return err
		}
		for _, r := range rows {
			resp.BrowserBreakdown = append(resp.BrowserBreakdown, dto.BrowserCountDTO{Browser: r.Browser, Count: r.Count})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := f.scanRepo.TopLocations(gctx, qrCodeID, utils.TopLocationsLimit)
		if err != nil {
			return err
		}
		for _, r := range rows {
			resp.LocationBreakdown = append(resp.LocationBreakdown, dto.LocationCountDTO{Country: r.Country, City: r.City, Count: r.Count})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, newPersistenceError("Failed to compute analytics", err)
	}

	return resp, nil
}

package businessflow

import (
	"context"
	"fmt"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	sheetSummary   = "Summary"
	sheetByDate    = "Scans By Date"
	sheetDevices   = "Devices"
	sheetBrowsers  = "Browsers"
	sheetLocations = "Locations"
)

// AnalyticsExportFlow renders an analytics summary as an XLSX workbook
type AnalyticsExportFlow interface {
	Export(ctx context.Context, qrCodeID uint) (string, []byte, error)
}

type AnalyticsExportFlowImpl struct {
	analytics AnalyticsFlow
}

func NewAnalyticsExportFlow(analytics AnalyticsFlow) AnalyticsExportFlow {
	return &AnalyticsExportFlowImpl{analytics: analytics}
}

func (f *AnalyticsExportFlowImpl) Export(ctx context.Context, qrCodeID uint) (string, []byte, error) {
	summary, err := f.analytics.Summarize(ctx, qrCodeID)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := writeAnalyticsWorkbook(xl, qrCodeID, summary); err != nil {
		return "", nil, NewBusinessError(CodeExportFailed, "Failed to build Excel file", err)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError(CodeExportFailed, "Failed to write Excel file", err)
	}
	filename := fmt.Sprintf("qr_%d_analytics_%s.xlsx", qrCodeID, utils.UTCNowFormat("20060102"))
	return filename, buf.Bytes(), nil
}

func writeAnalyticsWorkbook(xl *excelize.File, qrCodeID uint, s *dto.AnalyticsResponse) error {
	// Rename default sheet
	if err := xl.SetSheetName(xl.GetSheetName(0), sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetByDate, sheetDevices, sheetBrowsers, sheetLocations} {
		if _, err := xl.NewSheet(name); err != nil {
			return err
		}
	}

	summary := [][]any{
		{"qr_code_id", qrCodeID},
		{"total_scans", s.TotalScans},
		{"generated_at", utils.UTCNowRFC3339()},
	}
	if err := writeRows(xl, sheetSummary, []any{"metric", "value"}, summary); err != nil {
		return err
	}

	byDate := make([][]any, 0, len(s.ScansByDate))
	for _, r := range s.ScansByDate {
		byDate = append(byDate, []any{r.Date, r.Count})
	}
	if err := writeRows(xl, sheetByDate, []any{"date", "count"}, byDate); err != nil {
		return err
	}

	devices := make([][]any, 0, len(s.DeviceBreakdown))
	for _, r := range s.DeviceBreakdown {
		devices = append(devices, []any{r.DeviceType, r.Count})
	}
	if err := writeRows(xl, sheetDevices, []any{"device_type", "count"}, devices); err != nil {
		return err
	}

	browsers := make([][]any, 0, len(s.BrowserBreakdown))
	for _, r := range s.BrowserBreakdown {
		name := ""
		if r.Browser != nil {
			name = *r.Browser
		}
		browsers = append(browsers, []any{name, r.Count})
	}
	if err := writeRows(xl, sheetBrowsers, []any{"browser", "count"}, browsers); err != nil {
		return err
	}

	locations := make([][]any, 0, len(s.LocationBreakdown))
	for _, r := range s.LocationBreakdown {
		locations = append(locations, []any{r.Country, r.City, r.Count})
	}
	return writeRows(xl, sheetLocations, []any{"country", "city", "count"}, locations)
}

func writeRows(xl *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

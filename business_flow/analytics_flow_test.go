package businessflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/dto"
	"github.com/amirphl/Yata-no-Kagami/models"
	testingutil "github.com/amirphl/Yata-no-Kagami/testing"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAnalyticsFlow_Summarize(t *testing.T) {
	deps := newFlowDeps(t)
	ctx := context.Background()
	flow := NewAnalyticsFlow(deps.registry, deps.scanRepo)

	t.Run("UnknownQRCode", func(t *testing.T) {
		_, err := flow.Summarize(ctx, 424242)
		assert.True(t, IsQRCodeNotFound(err))
	})

	t.Run("NoScans", func(t *testing.T) {
		qr, err := deps.fixtures.CreateTestQRCode()
		require.NoError(t, err)

		resp, err := flow.Summarize(ctx, qr.ID)
		require.NoError(t, err)
		assert.Zero(t, resp.TotalScans)

		// empty breakdowns serialise as [] not null
		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"total_scans":0,"scans_by_date":[],"device_breakdown":[],"browser_breakdown":[],"location_breakdown":[]}`, string(raw))
	})

	t.Run("ExactCountsAndLimits", func(t *testing.T) {
		qr, err := deps.fixtures.CreateTestQRCode()
		require.NoError(t, err)

		day := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
		// 12 distinct browsers, browser i seen i+1 times; 25 distinct cities
		expected := int64(0)
		for i := range 12 {
			for range i + 1 {
				_, err := deps.fixtures.CreateTestScan(qr.ID,
					testingutil.WithBrowser(fmt.Sprintf("Browser%02d", i)),
					testingutil.WithDevice(models.DeviceTypeDesktop),
					testingutil.WithScannedAt(day),
				)
				require.NoError(t, err)
				expected++
			}
		}
		for i := range 25 {
			_, err := deps.fixtures.CreateTestScan(qr.ID,
				testingutil.WithLocation("US", fmt.Sprintf("City%02d", i)),
				testingutil.WithScannedAt(day.AddDate(0, 0, 1)),
			)
			require.NoError(t, err)
			expected++
		}

		resp, err := flow.Summarize(ctx, qr.ID)
		require.NoError(t, err)
		assert.Equal(t, expected, resp.TotalScans)

		assert.Equal(t, []dto.DateCountDTO{
			{Date: "2024-01-15", Count: 78},
			{Date: "2024-01-16", Count: 25},
		}, resp.ScansByDate)

		assert.Equal(t, []dto.DeviceCountDTO{
			{DeviceType: models.DeviceTypeDesktop, Count: 78},
			{DeviceType: models.DeviceTypeUnknown, Count: 25},
		}, resp.DeviceBreakdown)

		require.Len(t, resp.BrowserBreakdown, utils.TopBrowsersLimit)
		assert.Nil(t, resp.BrowserBreakdown[0].Browser)
		assert.Equal(t, int64(25), resp.BrowserBreakdown[0].Count)
		assert.Equal(t, "Browser11", *resp.BrowserBreakdown[1].Browser)
		assert.Equal(t, int64(12), resp.BrowserBreakdown[1].Count)

		require.Len(t, resp.LocationBreakdown, utils.TopLocationsLimit)
		assert.Equal(t, dto.LocationCountDTO{Country: "unknown", City: "unknown", Count: 78}, resp.LocationBreakdown[0])
		assert.Equal(t, dto.LocationCountDTO{Country: "US", City: "City00", Count: 1}, resp.LocationBreakdown[1])
	})

	t.Run("CounterIsNotTheTotal", func(t *testing.T) {
		qr, err := deps.fixtures.CreateTestQRCode()
		require.NoError(t, err)
		require.NoError(t, deps.db.DB.Model(&models.QRCode{}).Where("id = ?", qr.ID).Update("scan_count", 999).Error)

		_, err = deps.fixtures.CreateTestScan(qr.ID)
		require.NoError(t, err)

		resp, err := flow.Summarize(ctx, qr.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.TotalScans)
	})
}

func TestAnalyticsExportFlow_Export(t *testing.T) {
	deps := newFlowDeps(t)
	ctx := context.Background()
	export := NewAnalyticsExportFlow(NewAnalyticsFlow(deps.registry, deps.scanRepo))

	qr, err := deps.fixtures.CreateTestQRCode()
	require.NoError(t, err)
	_, err = deps.fixtures.CreateTestScan(qr.ID,
		testingutil.WithDevice(models.DeviceTypeMobile),
		testingutil.WithBrowser("Safari"),
		testingutil.WithLocation("JP", "Osaka"),
		testingutil.WithScannedAt(time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, err)

	filename, data, err := export.Export(ctx, qr.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, fmt.Sprintf("qr_%d_analytics_", qr.ID)))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	assert.Equal(t, []string{"Summary", "Scans By Date", "Devices", "Browsers", "Locations"}, xl.GetSheetList())

	total, err := xl.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", total)

	date, err := xl.GetCellValue("Scans By Date", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", date)

	city, err := xl.GetCellValue("Locations", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Osaka", city)

	t.Run("UnknownQRCode", func(t *testing.T) {
		_, _, err := export.Export(ctx, 987654)
		assert.True(t, IsQRCodeNotFound(err))
	})
}

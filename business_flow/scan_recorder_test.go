package businessflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/services"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/repository"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iPhoneSafari = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1"

func newTestRecorder(deps *flowDeps, repo repository.ScanRepository, cfg config.TrackingConfig) *ScanRecorderImpl {
	return NewScanRecorder(repo, services.NewUserAgentClassifier(), services.NewPrivacyFilter(), cfg, deps.logger)
}

func TestScanRecorder_Persist(t *testing.T) {
	deps := newFlowDeps(t)
	ctx := context.Background()
	recorder := newTestRecorder(deps, deps.scanRepo, config.TrackingConfig{})

	qr, err := deps.fixtures.CreateTestQRCode()
	require.NoError(t, err)

	job := scanJob{
		qrCodeID:   qr.ID,
		userAgent:  utils.ToPtr(iPhoneSafari),
		ip:         utils.ToPtr("192.168.1.100"),
		country:    utils.ToPtr("JP"),
		city:       utils.ToPtr("Tokyo"),
		receivedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}
	require.NoError(t, recorder.persist(ctx, job))

	rows, err := deps.scanRepo.ByFilter(ctx, models.ScanFilter{QRCodeID: &qr.ID}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	scan := rows[0]
	assert.Equal(t, "192.168.1.0", *scan.IPAddress)
	assert.Equal(t, models.DeviceTypeMobile, *scan.DeviceType)
	assert.Equal(t, "Safari", *scan.Browser)
	assert.Equal(t, "JP", *scan.Country)
	assert.Equal(t, "Tokyo", *scan.City)
	assert.Equal(t, iPhoneSafari, *scan.UserAgent)
	assert.True(t, job.receivedAt.Equal(scan.ScannedAt))

	t.Run("MissingMetadata", func(t *testing.T) {
		require.NoError(t, recorder.persist(ctx, scanJob{qrCodeID: qr.ID, receivedAt: utils.UTCNow()}))

		rows, err := deps.scanRepo.ByFilter(ctx, models.ScanFilter{QRCodeID: &qr.ID}, "id DESC", 1, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].IPAddress)
		assert.Nil(t, rows[0].UserAgent)
		assert.Nil(t, rows[0].Country)
		assert.Equal(t, models.DeviceTypeUnknown, *rows[0].DeviceType)
		assert.Equal(t, models.BrowserUnknown, *rows[0].Browser)
	})

	t.Run("OversizedHeadersAreClamped", func(t *testing.T) {
		job := scanJob{
			qrCodeID:   qr.ID,
			country:    utils.ToPtr("COUNTRY-CODE-FROM-A-BROKEN-EDGE"),
			city:       utils.ToPtr(strings.Repeat("ü", 300)),
			receivedAt: utils.UTCNow(),
		}
		require.NoError(t, recorder.persist(ctx, job))

		rows, err := deps.scanRepo.ByFilter(ctx, models.ScanFilter{QRCodeID: &qr.ID}, "id DESC", 1, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "COUNTRY-", *rows[0].Country)
		assert.Equal(t, strings.Repeat("ü", utils.ScanCityMaxLength), *rows[0].City)
	})
}

func TestScanRecorder_StartDrainsQueue(t *testing.T) {
	deps := newFlowDeps(t)
	ctx := context.Background()
	recorder := newTestRecorder(deps, deps.scanRepo, config.TrackingConfig{Workers: 2, QueueSize: 64, WriteTimeout: 5 * time.Second})

	qr, err := deps.fixtures.CreateTestQRCode()
	require.NoError(t, err)

	before := testutil.ToFloat64(scansRecordedTotal)

	stop := recorder.Start(ctx)
	for range 25 {
		recorder.Record(qr.ID, utils.ToPtr(iPhoneSafari), utils.ToPtr("10.1.2.3"), nil, nil)
	}
	stop()
	stop() // idempotent

	total, err := deps.scanRepo.CountByQRCode(ctx, qr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, before+25, testutil.ToFloat64(scansRecordedTotal))

	reloaded, err := deps.qrRepo.ByID(ctx, qr.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), reloaded.ScanCount)

	t.Run("RecordAfterStopIsDropped", func(t *testing.T) {
		dropped := testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonStopped))
		recorder.Record(qr.ID, nil, nil, nil, nil)
		assert.Equal(t, dropped+1, testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonStopped)))

		total, err := deps.scanRepo.CountByQRCode(ctx, qr.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
	})
}

func TestScanRecorder_FullQueueDrops(t *testing.T) {
	deps := newFlowDeps(t)
	recorder := newTestRecorder(deps, deps.scanRepo, config.TrackingConfig{Workers: 1, QueueSize: 2})

	dropped := testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonQueueFull))

	// not started: nothing consumes the queue
	done := make(chan struct{})
	go func() {
		for range 5 {
			recorder.Record(1, nil, nil, nil, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	assert.Len(t, recorder.queue, 2)
	assert.Equal(t, dropped+3, testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonQueueFull)))
}

type failingScanRepo struct {
	repository.ScanRepository
	panics bool
}

func (f *failingScanRepo) SaveWithCounter(context.Context, *models.Scan) error {
	if f.panics {
		panic("boom")
	}
	return errors.New("database is gone")
}

func TestScanRecorder_FailuresAreSwallowed(t *testing.T) {
	deps := newFlowDeps(t)

	for _, tc := range []struct {
		name   string
		panics bool
	}{
		{"persist error", false},
		{"panic", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			recorder := newTestRecorder(deps, &failingScanRepo{panics: tc.panics}, config.TrackingConfig{Workers: 1, QueueSize: 4})
			failed := testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonPersistFailed))

			stop := recorder.Start(context.Background())
			recorder.Record(1, nil, nil, nil, nil)
			recorder.Record(2, nil, nil, nil, nil)
			stop()

			assert.Equal(t, failed+2, testutil.ToFloat64(scansDroppedTotal.WithLabelValues(dropReasonPersistFailed)))
		})
	}
}

func TestScanRecorder_DrainsAfterParentCancel(t *testing.T) {
	deps := newFlowDeps(t)
	recorder := newTestRecorder(deps, deps.scanRepo, config.TrackingConfig{Workers: 1, QueueSize: 16})

	qr, err := deps.fixtures.CreateTestQRCode()
	require.NoError(t, err)

	parent, cancel := context.WithCancel(context.Background())
	for range 5 {
		recorder.Record(qr.ID, nil, utils.ToPtr("2001:db8:85a3:8d3:1319:8a2e:370:7348"), nil, nil)
	}
	stop := recorder.Start(parent)
	cancel()
	stop()

	rows, err := deps.scanRepo.ByFilter(context.Background(), models.ScanFilter{QRCodeID: &qr.ID}, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Equal(t, "2001:db8:85a3:8d3::", *r.IPAddress)
	}
}

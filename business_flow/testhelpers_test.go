package businessflow

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirphl/Yata-no-Kagami/app/services"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/amirphl/Yata-no-Kagami/repository"
	testingutil "github.com/amirphl/Yata-no-Kagami/testing"
	"github.com/stretchr/testify/require"
)

type flowDeps struct {
	db       *testingutil.TestDB
	fixtures *testingutil.TestFixtures
	qrRepo   repository.QRCodeRepository
	scanRepo repository.ScanRepository
	registry *ShortCodeRegistryImpl
	logger   *slog.Logger
}

func newFlowDeps(t *testing.T) *flowDeps {
	t.Helper()
	testDB, err := testingutil.SetupSQLiteTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = testDB.TeardownTestDB() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	qrRepo := repository.NewQRCodeRepository(testDB.DB)
	scanRepo := repository.NewScanRepository(testDB.DB)
	registry := NewShortCodeRegistry(qrRepo, services.NewNoopShortCodeCache(), config.ShortCodeConfig{Length: 10, MaxAttempts: 5}, logger).(*ShortCodeRegistryImpl)

	return &flowDeps{
		db:       testDB,
		fixtures: testingutil.NewTestFixtures(testDB),
		qrRepo:   qrRepo,
		scanRepo: scanRepo,
		registry: registry,
		logger:   logger,
	}
}

// recordedScan captures a Record call
type recordedScan struct {
	qrCodeID  uint
	userAgent *string
	ip        *string
	country   *string
	city      *string
}

type fakeRecorder struct {
	calls []recordedScan
}

func (f *fakeRecorder) Record(qrCodeID uint, userAgent, ip, country, city *string) {
	f.calls = append(f.calls, recordedScan{qrCodeID, userAgent, ip, country, city})
}

func (f *fakeRecorder) Start(_ context.Context) func() { return func() {} }

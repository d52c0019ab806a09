package businessflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirphl/Yata-no-Kagami/app/services"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/repository"
	"github.com/amirphl/Yata-no-Kagami/utils"
)

// ScanRecorder persists scan events in the background. Record never blocks and
// never fails; events that cannot be queued are dropped and counted.
type ScanRecorder interface {
	Record(qrCodeID uint, userAgent, ip, country, city *string)
	Start(parent context.Context) func()
}

type scanJob struct {
	qrCodeID   uint
	userAgent  *string
	ip         *string
	country    *string
	city       *string
	receivedAt time.Time
}

type ScanRecorderImpl struct {
	repo         repository.ScanRepository
	classifier   services.UserAgentClassifier
	privacy      services.PrivacyFilter
	logger       *slog.Logger
	workers      int
	writeTimeout time.Duration

	queue chan scanJob

	mu       sync.RWMutex
	started  bool
	stopped  bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewScanRecorder(
	repo repository.ScanRepository,
	classifier services.UserAgentClassifier,
	privacy services.PrivacyFilter,
	cfg config.TrackingConfig,
	logger *slog.Logger,
) *ScanRecorderImpl {
	workers := cfg.Workers
	if workers <= 0 {
		workers = utils.ScanWorkers
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = utils.ScanQueueSize
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = utils.ScanWriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanRecorderImpl{
		repo:         repo,
		classifier:   classifier,
		privacy:      privacy,
		logger:       logger.With("component", "scan_recorder"),
		workers:      workers,
		writeTimeout: writeTimeout,
		queue:        make(chan scanJob, queueSize),
	}
}

// Record enqueues a scan for qrCodeID. It returns immediately.
func (r *ScanRecorderImpl) Record(qrCodeID uint, userAgent, ip, country, city *string) {
	job := scanJob{
		qrCodeID:   qrCodeID,
		userAgent:  userAgent,
		ip:         ip,
		country:    country,
		city:       city,
		receivedAt: utils.UTCNow(),
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		scansDroppedTotal.WithLabelValues(dropReasonStopped).Inc()
		r.logger.Warn("scan dropped", "reason", dropReasonStopped, "qr_code_id", qrCodeID)
		return
	}

	scanQueueDepth.Inc()
	select {
	case r.queue <- job:
	default:
		scanQueueDepth.Dec()
		scansDroppedTotal.WithLabelValues(dropReasonQueueFull).Inc()
		r.logger.Warn("scan dropped", "reason", dropReasonQueueFull, "qr_code_id", qrCodeID)
	}
}

// Start launches the workers. The returned stop function closes intake, drains
// what is already queued and waits for the workers to exit; it is safe to call twice.
func (r *ScanRecorderImpl) Start(parent context.Context) func() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return r.stop
	}
	r.started = true
	r.mu.Unlock()

	// queued scans are still written after the parent is cancelled
	base := context.WithoutCancel(parent)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go func(worker int) {
			defer r.wg.Done()
			for job := range r.queue {
				scanQueueDepth.Dec()
				r.process(base, worker, job)
			}
		}(i)
	}

	r.logger.Info("scan recorder started", "workers", r.workers, "queue_size", cap(r.queue))
	return r.stop
}

func (r *ScanRecorderImpl) stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		close(r.queue)
		r.mu.Unlock()

		r.wg.Wait()
		r.logger.Info("scan recorder stopped")
	})
}

func (r *ScanRecorderImpl) process(base context.Context, worker int, job scanJob) {
	defer func() {
		if rec := recover(); rec != nil {
			scansDroppedTotal.WithLabelValues(dropReasonPersistFailed).Inc()
			r.logger.Error("scan job panicked", "worker", worker, "qr_code_id", job.qrCodeID, "panic", fmt.Sprint(rec))
		}
	}()

	ctx, cancel := context.WithTimeout(base, r.writeTimeout)
	defer cancel()

	if err := r.persist(ctx, job); err != nil {
		scansDroppedTotal.WithLabelValues(dropReasonPersistFailed).Inc()
		r.logger.Error("scan persist failed", "worker", worker, "qr_code_id", job.qrCodeID, "error", err)
		return
	}
	scansRecordedTotal.Inc()
}

// persist classifies and truncates before anything reaches the store.
// Header values are clamped to their column widths; an oversized edge header
// must not cost the whole scan row.
func (r *ScanRecorderImpl) persist(ctx context.Context, job scanJob) error {
	deviceType, browser := r.classifier.Classify(job.userAgent)

	scan := &models.Scan{
		QRCodeID:   job.qrCodeID,
		ScannedAt:  job.receivedAt,
		UserAgent:  job.userAgent,
		IPAddress:  utils.ClampPtr(r.privacy.Truncate(job.ip), utils.ScanIPMaxLength),
		Country:    utils.ClampPtr(job.country, utils.ScanCountryMaxLength),
		City:       utils.ClampPtr(job.city, utils.ScanCityMaxLength),
		DeviceType: &deviceType,
		Browser:    utils.ClampPtr(&browser, utils.ScanBrowserMaxLength),
	}
	return r.repo.SaveWithCounter(ctx, scan)
}

package businessflow

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/amirphl/Yata-no-Kagami/app/services"
	"github.com/amirphl/Yata-no-Kagami/config"
	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/repository"
	"github.com/amirphl/Yata-no-Kagami/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	shortCodePattern = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)
)

// ShortCodeRegistry issues collision-free short codes and resolves them back to QR codes.
// The unique index on qr_codes.short_code is the only coordination point between issuers.
type ShortCodeRegistry interface {
	Issue(ctx context.Context, targetURL, fgColor, bgColor string) (*models.QRCode, error)
	IssueWith(ctx context.Context, targetURL, fgColor, bgColor string, prepare PrepareFunc) (*models.QRCode, error)
	Resolve(ctx context.Context, shortCode string) (*models.QRCode, error)
	ByID(ctx context.Context, id uint) (*models.QRCode, error)
}

// PrepareFunc runs against every candidate before it is saved. An error
// aborts issuance and nothing is persisted.
type PrepareFunc func(candidate *models.QRCode) error

type ShortCodeRegistryImpl struct {
	repo        repository.QRCodeRepository
	cache       services.ShortCodeCache
	maxAttempts int
	generate    func() (string, error)
	logger      *slog.Logger
}

func NewShortCodeRegistry(
	repo repository.QRCodeRepository,
	cache services.ShortCodeCache,
	cfg config.ShortCodeConfig,
	logger *slog.Logger,
) ShortCodeRegistry {
	length := cfg.Length
	if length <= 0 {
		length = utils.ShortCodeLength
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = utils.ShortCodeMaxAttempts
	}
	if cache == nil {
		cache = services.NewNoopShortCodeCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShortCodeRegistryImpl{
		repo:        repo,
		cache:       cache,
		maxAttempts: maxAttempts,
		generate: func() (string, error) {
			return gonanoid.Generate(utils.ShortCodeAlphabet, length)
		},
		logger: logger,
	}
}

// Issue persists a new QR code under a freshly generated short code. A unique
// violation triggers a new candidate; other storage errors abort immediately.
func (r *ShortCodeRegistryImpl) Issue(ctx context.Context, targetURL, fgColor, bgColor string) (*models.QRCode, error) {
	return r.IssueWith(ctx, targetURL, fgColor, bgColor, nil)
}

// IssueWith is Issue with a hook that may reject a candidate before it is written
func (r *ShortCodeRegistryImpl) IssueWith(ctx context.Context, targetURL, fgColor, bgColor string, prepare PrepareFunc) (*models.QRCode, error) {
	targetURL = strings.TrimSpace(targetURL)
	if err := validateTargetURL(targetURL); err != nil {
		return nil, err
	}
	if !hexColorPattern.MatchString(fgColor) || !hexColorPattern.MatchString(bgColor) {
		return nil, NewValidationError(ErrColorInvalid)
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		code, err := r.generate()
		if err != nil {
			return nil, NewBusinessError(CodeShortCodeGeneration, "Failed to generate short code", err)
		}

		qr := &models.QRCode{
			ShortCode: code,
			TargetURL: targetURL,
			FgColor:   fgColor,
			BgColor:   bgColor,
			CreatedAt: utils.UTCNow(),
		}
		if prepare != nil {
			if err := prepare(qr); err != nil {
				return nil, err
			}
		}
		err = r.repo.Save(ctx, qr)
		if err == nil {
			if cerr := r.cache.Set(ctx, qr); cerr != nil {
				r.logger.Warn("short code cache write failed", "short_code", code, "error", cerr)
			}
			return qr, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, newPersistenceError("Failed to save QR code", err)
		}
		r.logger.Debug("short code collision", "attempt", attempt, "short_code", code)
	}

	r.logger.Error("short code issuance exhausted retries", "attempts", r.maxAttempts)
	return nil, NewBusinessErrorf(CodeShortCodeRetryExhausted, "Could not allocate a unique short code after %d attempts", ErrShortCodeRetryExhausted, r.maxAttempts)
}

// Resolve looks the short code up in the cache and then in the store.
// Misses are never cached.
func (r *ShortCodeRegistryImpl) Resolve(ctx context.Context, shortCode string) (*models.QRCode, error) {
	if shortCode == "" || len(shortCode) > utils.ShortCodeMaxLength || !shortCodePattern.MatchString(shortCode) {
		return nil, ErrQRCodeNotFound
	}

	cached, err := r.cache.Get(ctx, shortCode)
	if err != nil {
		r.logger.Warn("short code cache read failed", "short_code", shortCode, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	qr, err := r.repo.ByShortCode(ctx, shortCode)
	if err != nil {
		return nil, newPersistenceError("Failed to lookup short code", err)
	}
	if qr == nil {
		return nil, ErrQRCodeNotFound
	}

	if err := r.cache.Set(ctx, qr); err != nil {
		r.logger.Warn("short code cache write failed", "short_code", shortCode, "error", err)
	}
	return qr, nil
}

func (r *ShortCodeRegistryImpl) ByID(ctx context.Context, id uint) (*models.QRCode, error) {
	if id == 0 {
		return nil, ErrQRCodeNotFound
	}
	qr, err := r.repo.ByID(ctx, id)
	if err != nil {
		return nil, newPersistenceError("Failed to lookup QR code", err)
	}
	if qr == nil {
		return nil, ErrQRCodeNotFound
	}
	return qr, nil
}

func validateTargetURL(targetURL string) error {
	if targetURL == "" {
		return NewValidationError(ErrTargetURLRequired)
	}
	u, err := url.Parse(targetURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError(ErrTargetURLInvalid)
	}
	return nil
}

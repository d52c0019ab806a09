package services

import (
	"testing"
	"time"

	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShortCodeCache(t *testing.T) {
	t.Run("nil client falls back to noop", func(t *testing.T) {
		cache := NewShortCodeCache(nil, "kagami", time.Hour)
		_, ok := cache.(NoopShortCodeCache)
		assert.True(t, ok)

		qr, err := cache.Get(t.Context(), "abc")
		require.NoError(t, err)
		assert.Nil(t, qr)
		assert.NoError(t, cache.Set(t.Context(), &models.QRCode{ShortCode: "abc"}))
	})

	t.Run("keys are prefixed", func(t *testing.T) {
		rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
		defer rc.Close()

		cache := NewShortCodeCache(rc, "kagami", time.Hour).(*RedisShortCodeCache)
		assert.Equal(t, "kagami:short_code:Ab3", cache.key("Ab3"))

		bare := NewShortCodeCache(rc, "", time.Hour).(*RedisShortCodeCache)
		assert.Equal(t, "short_code:Ab3", bare.key("Ab3"))
	})
}

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPtr(t *testing.T) {
	assert.Nil(t, ClampPtr(nil, 8))

	short := "DE"
	assert.Same(t, &short, ClampPtr(&short, 8))

	assert.Equal(t, "Sankt", *ClampPtr(ToPtr("Sankt Petersburg"), 5))
	// counts runes, not bytes
	assert.Equal(t, "Zürich", *ClampPtr(ToPtr("Zürich"), 6))
	assert.Equal(t, "東京", *ClampPtr(ToPtr("東京都"), 2))
}

func TestRequestScopeFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, EndpointFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), RequestIDKey, "3f1c2a")
	ctx = context.WithValue(ctx, EndpointKey, "/r/Abc123xyz0")
	assert.Equal(t, "3f1c2a", RequestIDFromContext(ctx))
	assert.Equal(t, "/r/Abc123xyz0", EndpointFromContext(ctx))
}

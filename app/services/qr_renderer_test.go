package services

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1A2b3C")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 0xff}, c)

	for _, bad := range []string{"", "#FFF", "000000", "#GGGGGG", "#0000000"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestQRRenderer_RenderDataURL(t *testing.T) {
	renderer := NewQRRenderer(256)

	t.Run("renders png with requested colors", func(t *testing.T) {
		dataURL, err := renderer.RenderDataURL("https://example.com/r/abc123XYZ0", "#112233", "#FAFAFA")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(dataURL, utils.PNGDataURLPrefix))

		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, utils.PNGDataURLPrefix))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())

		// the quiet zone corner is background
		r, g, b, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xfa), r>>8)
		assert.Equal(t, uint32(0xfa), g>>8)
		assert.Equal(t, uint32(0xfa), b>>8)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := renderer.RenderDataURL("", "#000000", "#FFFFFF")
		assert.Error(t, err)

		_, err = renderer.RenderDataURL("https://example.com", "black", "#FFFFFF")
		assert.Error(t, err)

		_, err = renderer.RenderDataURL("https://example.com", "#000000", "white")
		assert.Error(t, err)
	})

	t.Run("default size", func(t *testing.T) {
		r := NewQRRenderer(0).(*QRRendererImpl)
		assert.Equal(t, utils.QRCodeImageSize, r.size)
	})
}

package services

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/skip2/go-qrcode"
)

// QRRenderer turns content into a PNG QR image encoded as a data URL
type QRRenderer interface {
	RenderDataURL(content, fgColor, bgColor string) (string, error)
}

// QRRendererImpl renders QR codes with medium error recovery
type QRRendererImpl struct {
	size int
}

// NewQRRenderer creates a new renderer producing size x size images
func NewQRRenderer(size int) QRRenderer {
	if size <= 0 {
		size = utils.QRCodeImageSize
	}
	return &QRRendererImpl{size: size}
}

// RenderDataURL encodes content and returns data:image/png;base64,...
func (r *QRRendererImpl) RenderDataURL(content, fgColor, bgColor string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("qr content is empty")
	}

	fg, err := ParseHexColor(fgColor)
	if err != nil {
		return "", fmt.Errorf("invalid foreground color: %w", err)
	}
	bg, err := ParseHexColor(bgColor)
	if err != nil {
		return "", fmt.Errorf("invalid background color: %w", err)
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg

	png, err := q.PNG(r.size)
	if err != nil {
		return "", fmt.Errorf("failed to render qr png: %w", err)
	}

	return utils.PNGDataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// ParseHexColor parses #RRGGBB into an opaque color
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q is not in #RRGGBB form", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not in #RRGGBB form", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

package dto

// GenerateQRRequest is the body of POST /api/qr/generate
type GenerateQRRequest struct {
	TargetURL string `json:"targetUrl" validate:"required,url,max=2048"`
	FgColor   string `json:"fgColor,omitempty" validate:"omitempty,hexcolor6"`
	BgColor   string `json:"bgColor,omitempty" validate:"omitempty,hexcolor6"`
}

// GenerateQRResponse describes a freshly issued QR code
type GenerateQRResponse struct {
	ID            uint   `json:"id"`
	ShortCode     string `json:"short_code"`
	ShortURL      string `json:"short_url"`
	QRCodeDataURL string `json:"qr_code_data_url"`
	AnalyticsURL  string `json:"analytics_url"`
}

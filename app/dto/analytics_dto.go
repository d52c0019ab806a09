package dto

// AnalyticsResponse is the dashboard payload for a single QR code
type AnalyticsResponse struct {
	TotalScans        int64              `json:"total_scans"`
	ScansByDate       []DateCountDTO     `json:"scans_by_date"`
	DeviceBreakdown   []DeviceCountDTO   `json:"device_breakdown"`
	BrowserBreakdown  []BrowserCountDTO  `json:"browser_breakdown"`
	LocationBreakdown []LocationCountDTO `json:"location_breakdown"`
}

type DateCountDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int64  `json:"count"`
}

type DeviceCountDTO struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

// BrowserCountDTO keeps a null browser as JSON null
type BrowserCountDTO struct {
	Browser *string `json:"browser"`
	Count   int64   `json:"count"`
}

type LocationCountDTO struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Count   int64  `json:"count"`
}

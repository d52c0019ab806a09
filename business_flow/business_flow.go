// Package businessflow contains the business logic for the application.
package businessflow

import (
	"github.com/amirphl/Yata-no-Kagami/utils"
	fiberutils "github.com/gofiber/utils/v2"
)

// ClientMetadata holds what the redirect path knows about the scanning client
type ClientMetadata struct {
	IPAddress string        `json:"ip_address"`
	UserAgent string        `json:"user_agent"`
	Location  *LocationInfo `json:"location,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
}

// LocationInfo holds geographical location information reported by the edge
type LocationInfo struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information.
// Values are copied: fiber hands out strings backed by pooled request buffers
// and the metadata outlives the request on the scan queue.
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: fiberutils.CopyString(ipAddress),
		UserAgent: fiberutils.CopyString(userAgent),
	}
}

// SetLocation stores a copy of location
func (cm *ClientMetadata) SetLocation(location *LocationInfo) {
	if location == nil {
		cm.Location = nil
		return
	}
	cm.Location = &LocationInfo{
		Country: fiberutils.CopyString(location.Country),
		City:    fiberutils.CopyString(location.City),
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = fiberutils.CopyString(requestID)
}

func (cm *ClientMetadata) userAgentPtr() *string {
	if cm == nil {
		return nil
	}
	return optional(cm.UserAgent)
}

func (cm *ClientMetadata) ipPtr() *string {
	if cm == nil {
		return nil
	}
	return optional(cm.IPAddress)
}

func (cm *ClientMetadata) countryPtr() *string {
	if cm == nil || cm.Location == nil {
		return nil
	}
	return optional(cm.Location.Country)
}

func (cm *ClientMetadata) cityPtr() *string {
	if cm == nil || cm.Location == nil {
		return nil
	}
	return optional(cm.Location.City)
}

// optional maps blank strings to nil so absent headers are stored as NULL
func optional(s string) *string {
	return utils.TrimmedPtr(s)
}

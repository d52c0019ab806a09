package businessflow

import (
	"context"
)

// RedirectFlow resolves a scanned short code to its target URL and hands the
// scan to the recorder. Public flow, no authentication required.
type RedirectFlow interface {
	Visit(ctx context.Context, shortCode string, metadata *ClientMetadata) (string, error)
}

type RedirectFlowImpl struct {
	registry ShortCodeRegistry
	recorder ScanRecorder
}

func NewRedirectFlow(registry ShortCodeRegistry, recorder ScanRecorder) RedirectFlow {
	return &RedirectFlowImpl{registry: registry, recorder: recorder}
}

// Visit returns ErrQRCodeNotFound for unknown codes; nothing is recorded for them.
func (f *RedirectFlowImpl) Visit(ctx context.Context, shortCode string, metadata *ClientMetadata) (string, error) {
	qr, err := f.registry.Resolve(ctx, shortCode)
	if err != nil {
		return "", err
	}

	f.recorder.Record(qr.ID, metadata.userAgentPtr(), metadata.ipPtr(), metadata.countryPtr(), metadata.cityPtr())
	return qr.TargetURL, nil
}

//go:build windows

package observer

import (
	"context"
	"errors"
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// WMIProvider queries MSFT_MpComputerStatus in the Defender WMI namespace.
// Each call to Observe connects anew, so a broken connection cannot wedge later polls.
type WMIProvider struct {
	// namespace is the WMI namespace path to connect to.
	namespace string
}

// NewProvider returns the WMI-backed provider.
func NewProvider() *WMIProvider {
	return &WMIProvider{namespace: defenderNamespace}
}

// Observe reads the RealTimeProtectionEnabled property.
func (p *WMIProvider) Observe(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var records []statusRecord

	if err := wmi.QueryNamespace(statusQuery, &records, p.namespace); err != nil {
		var mismatch *wmi.ErrFieldMismatch
		if errors.As(err, &mismatch) {
			return false, fmt.Errorf("%w: %w", ErrFieldMissing, err)
		}

		return false, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return extractEnabled(records)
}

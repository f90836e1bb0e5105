package observer

import (
	"context"
	"errors"
	"fmt"
)

// Provider returns the current real-time protection flag.
// Implementations must not retry internally.
type Provider interface {
	Observe(ctx context.Context) (bool, error)
}

var (
	// ErrConnectionFailed indicates the security subsystem could not be reached or queried.
	ErrConnectionFailed = errors.New("security subsystem connection failed")
	// ErrFieldMissing indicates the status record or its protection field is absent or malformed.
	ErrFieldMissing = errors.New("protection status field missing")
	// ErrUnsupportedOS indicates the platform has no Defender management interface.
	ErrUnsupportedOS = errors.New("unsupported operating system")
)

const (
	// defenderNamespace is the WMI namespace of the Defender management provider.
	defenderNamespace = `root\Microsoft\Windows\Defender`
	// statusQuery selects the single computer status record.
	statusQuery = "SELECT RealTimeProtectionEnabled FROM MSFT_MpComputerStatus"
)

// statusRecord mirrors the MSFT_MpComputerStatus properties we read.
// The pointer stays nil when the property is NULL.
type statusRecord struct {
	RealTimeProtectionEnabled *bool
}

// extractEnabled returns the protection flag of the first record.
func extractEnabled(records []statusRecord) (bool, error) {
	if len(records) == 0 {
		return false, fmt.Errorf("%w: no MSFT_MpComputerStatus record", ErrFieldMissing)
	}

	enabled := records[0].RealTimeProtectionEnabled
	if enabled == nil {
		return false, fmt.Errorf("%w: RealTimeProtectionEnabled is null", ErrFieldMissing)
	}

	return *enabled, nil
}

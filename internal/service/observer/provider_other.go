//go:build !windows

package observer

import (
	"context"
	"fmt"
	"runtime"
)

// UnsupportedProvider is used on platforms without Microsoft Defender.
type UnsupportedProvider struct{}

// NewProvider returns a provider whose observations always fail.
func NewProvider() *UnsupportedProvider {
	return new(UnsupportedProvider)
}

// Observe always reports a connection failure.
func (*UnsupportedProvider) Observe(context.Context) (bool, error) {
	return false, fmt.Errorf("%w: %w: %s", ErrConnectionFailed, ErrUnsupportedOS, runtime.GOOS)
}

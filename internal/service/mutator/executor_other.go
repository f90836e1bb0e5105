//go:build !windows

package mutator

import (
	"context"
	"fmt"
	"runtime"
)

// UnsupportedExecutor is used on platforms without Microsoft Defender.
type UnsupportedExecutor struct{}

// NewExecutor returns the platform executor.
func NewExecutor() *UnsupportedExecutor {
	return new(UnsupportedExecutor)
}

// Run always fails without launching anything.
func (*UnsupportedExecutor) Run(context.Context, string) (Result, error) {
	return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

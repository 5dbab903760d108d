//go:build noebiten

package kaleido

import (
	"context"

	"github.com/opd-ai/go-kaleido/internal/config"
)

// windowAvailable is false in noebiten builds; only headless runs work.
const windowAvailable = false

// gameRunner has nothing to hold without a window.
type gameRunner struct{}

// runRenderLoop is never reached in noebiten builds because Run rejects
// non-headless instances first.
func (a *appImpl) runRenderLoop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (a *appImpl) applyConfigToGame(*gameRunner, *config.Config) {}

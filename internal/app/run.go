package app

import (
	"context"
	"fmt"

	"github.com/vk/gridmirror/internal/ctxlog"
	"github.com/vk/gridmirror/internal/megaverse"
	"github.com/vk/gridmirror/internal/shape"
)

// Dimensions of the phase-1 cross pattern.
const (
	crossGridSize = 11
	crossMargin   = 2
)

// Run executes the selected mode based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", appConfig.Mode)

	switch appConfig.Mode {
	case ModeMirror:
		a.logger.Info("🚀 Mirroring the goal map...")
		summary, err := a.driver.Mirror(ctx)
		if err != nil {
			return err
		}
		a.reportVerdict(summary.Validated, summary.Solved)

	case ModeClear:
		a.logger.Info("🧹 Clearing every entity the goal map names...")
		if _, err := a.driver.Clear(ctx); err != nil {
			return err
		}

	case ModeValidate:
		res := a.client.ValidateMap(ctx)
		if !res.Success {
			return fmt.Errorf("validation call failed: %s", res.Message)
		}
		a.reportVerdict(true, megaverse.SolvedFromData(res.Data))

	case ModeCross:
		a.logger.Info("🚀 Placing the phase-1 cross...")
		entities := shape.Cross(crossGridSize, crossMargin)
		summary, err := a.driver.Place(ctx, entities)
		if err != nil {
			return err
		}
		a.reportVerdict(summary.Validated, summary.Solved)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// reportVerdict logs the server's view of the map after a run.
func (a *App) reportVerdict(validated, solved bool) {
	switch {
	case !validated:
		a.logger.Warn("The server returned no validation verdict.")
	case solved:
		a.logger.Info("🏁 The server considers the map solved.")
	default:
		a.logger.Info("🏁 The server does not consider the map solved yet.")
	}
}

package reconcile

import (
	"context"
	"fmt"

	"github.com/vk/gridmirror/internal/config"
	"github.com/vk/gridmirror/internal/ctxlog"
	"github.com/vk/gridmirror/internal/grid"
	"github.com/vk/gridmirror/internal/megaverse"
)

// API is the slice of the remote client the driver needs. The concrete
// implementation is megaverse.Client; tests substitute fakes.
type API interface {
	GetGoalMap(ctx context.Context) megaverse.Result
	CreateEntity(ctx context.Context, e grid.Entity) megaverse.Result
	DeleteEntity(ctx context.Context, e grid.Entity) megaverse.Result
	ValidateMap(ctx context.Context) megaverse.Result
}

// Summary is the informational tally of one run. It is reported, never fed
// back into retries.
type Summary struct {
	Succeeded int
	Failed    int
	Validated bool
	Solved    bool
}

// String renders the tally the way it appears in the run log.
func (s Summary) String() string {
	return fmt.Sprintf("%d successful, %d failed", s.Succeeded, s.Failed)
}

// Driver reproduces (or clears) a goal pattern on the remote service.
type Driver struct {
	api    API
	submit config.SubmitPolicy
}

// NewDriver builds a driver submitting through the given policy.
func NewDriver(api API, submit config.SubmitPolicy) *Driver {
	return &Driver{api: api, submit: submit}
}

// Mirror runs the full reconciliation: fetch, flatten, submit creates,
// validate. Only a failed or malformed goal-map fetch is fatal; per-entity
// failures are counted and the run proceeds to validation regardless.
func (d *Driver) Mirror(ctx context.Context) (Summary, error) {
	logger := ctxlog.FromContext(ctx)

	entities, err := d.fetchEntities(ctx)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("Goal map flattened.", "entities", len(entities))

	summary := d.submitAll(ctx, entities, d.api.CreateEntity)
	logger.Info(summary.String())

	res := d.api.ValidateMap(ctx)
	if !res.Success {
		logger.Warn("Validation call failed.", "message", res.Message)
		return summary, nil
	}
	summary.Validated = true
	summary.Solved = megaverse.SolvedFromData(res.Data)
	logger.Info("Validation verdict received.", "solved", summary.Solved)
	return summary, nil
}

// Clear deletes every entity the goal map calls for, through the same
// bounded pipeline. No validation follows; an emptied map never validates.
func (d *Driver) Clear(ctx context.Context) (Summary, error) {
	logger := ctxlog.FromContext(ctx)

	entities, err := d.fetchEntities(ctx)
	if err != nil {
		return Summary{}, err
	}
	logger.Info("Goal map flattened for clearing.", "entities", len(entities))

	summary := d.submitAll(ctx, entities, d.api.DeleteEntity)
	logger.Info(summary.String())
	return summary, nil
}

// Place submits a locally generated pattern and validates the result. It is
// the mirror path without the goal-map fetch.
func (d *Driver) Place(ctx context.Context, entities []grid.Entity) (Summary, error) {
	logger := ctxlog.FromContext(ctx)

	summary := d.submitAll(ctx, entities, d.api.CreateEntity)
	logger.Info(summary.String())

	res := d.api.ValidateMap(ctx)
	if !res.Success {
		logger.Warn("Validation call failed.", "message", res.Message)
		return summary, nil
	}
	summary.Validated = true
	summary.Solved = megaverse.SolvedFromData(res.Data)
	logger.Info("Validation verdict received.", "solved", summary.Solved)
	return summary, nil
}

// fetchEntities fetches and flattens the goal map. Any failure here aborts
// the run before a single entity call goes out; retries already happened
// inside the client.
func (d *Driver) fetchEntities(ctx context.Context) ([]grid.Entity, error) {
	res := d.api.GetGoalMap(ctx)
	if !res.Success {
		return nil, fmt.Errorf("goal map fetch failed: %s", res.Message)
	}
	cells, err := grid.FromGoalPayload(res.Data)
	if err != nil {
		return nil, fmt.Errorf("malformed goal map: %w", err)
	}
	return grid.Flatten(cells), nil
}

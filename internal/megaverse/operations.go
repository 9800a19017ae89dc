package megaverse

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vk/gridmirror/internal/grid"
)

// entityBody is the JSON body shape shared by all entity create and delete
// calls. The candidate ID rides along on every one of them.
type entityBody struct {
	CandidateID string `json:"candidateId"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	Color       string `json:"color,omitempty"`
	Direction   string `json:"direction,omitempty"`
}

var entityPaths = map[grid.Kind]string{
	grid.KindPolyanet: "/polyanets",
	grid.KindSoloon:   "/soloons",
	grid.KindCometh:   "/comeths",
}

// CreatePolyanet places a polyanet at the given cell.
func (c *Client) CreatePolyanet(ctx context.Context, at grid.Coordinate) Result {
	return c.CreateEntity(ctx, grid.Entity{Kind: grid.KindPolyanet, At: at})
}

// CreateSoloon places a soloon of the given color at the given cell.
func (c *Client) CreateSoloon(ctx context.Context, at grid.Coordinate, color string) Result {
	return c.CreateEntity(ctx, grid.Entity{Kind: grid.KindSoloon, At: at, Color: color})
}

// CreateCometh places a cometh heading in the given direction at the given cell.
func (c *Client) CreateCometh(ctx context.Context, at grid.Coordinate, direction string) Result {
	return c.CreateEntity(ctx, grid.Entity{Kind: grid.KindCometh, At: at, Direction: direction})
}

// DeletePolyanet removes the polyanet at the given cell.
func (c *Client) DeletePolyanet(ctx context.Context, at grid.Coordinate) Result {
	return c.DeleteEntity(ctx, grid.Entity{Kind: grid.KindPolyanet, At: at})
}

// DeleteSoloon removes the soloon at the given cell.
func (c *Client) DeleteSoloon(ctx context.Context, at grid.Coordinate) Result {
	return c.DeleteEntity(ctx, grid.Entity{Kind: grid.KindSoloon, At: at})
}

// DeleteCometh removes the cometh at the given cell.
func (c *Client) DeleteCometh(ctx context.Context, at grid.Coordinate) Result {
	return c.DeleteEntity(ctx, grid.Entity{Kind: grid.KindCometh, At: at})
}

// CreateEntity dispatches the create call for any entity variant.
func (c *Client) CreateEntity(ctx context.Context, e grid.Entity) Result {
	return c.entityCall(ctx, http.MethodPost, "create", e)
}

// DeleteEntity dispatches the delete call for any entity variant.
func (c *Client) DeleteEntity(ctx context.Context, e grid.Entity) Result {
	return c.entityCall(ctx, http.MethodDelete, "delete", e)
}

func (c *Client) entityCall(ctx context.Context, method, verb string, e grid.Entity) Result {
	path, ok := entityPaths[e.Kind]
	if !ok {
		return Result{Message: fmt.Sprintf("%s entity: unknown kind %q", verb, e.Kind)}
	}
	op := fmt.Sprintf("%s %s %s", verb, e.Kind, e.At)
	body := entityBody{
		CandidateID: c.candidateID,
		Row:         e.At.Row,
		Column:      e.At.Column,
		Color:       e.Color,
		Direction:   e.Direction,
	}
	return c.do(ctx, op, method, path, body)
}

// GetGoalMap fetches the target grid for this candidate. On success,
// Result.Data holds the decoded payload for grid.FromGoalPayload.
func (c *Client) GetGoalMap(ctx context.Context) Result {
	return c.do(ctx, "get goal map", http.MethodGet, "/map/"+c.candidateID+"/goal", nil)
}

// ValidateMap asks the server whether the candidate's map matches the goal.
// Use SolvedFromData on the result payload for the verdict.
func (c *Client) ValidateMap(ctx context.Context) Result {
	return c.do(ctx, "validate map", http.MethodPost, "/map/"+c.candidateID+"/validate", nil)
}

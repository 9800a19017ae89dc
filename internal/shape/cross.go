// Package shape generates entity patterns locally instead of fetching them
// from the goal endpoint. The only pattern so far is the polyanet cross used
// by the first challenge phase.
package shape

import "github.com/vk/gridmirror/internal/grid"

// Cross returns the polyanets forming an X across a size×size grid, leaving
// an empty margin of inset cells on every side. Both diagonals are covered;
// the center cell of an odd-sized grid appears once. Order is row-major,
// matching the goal-map scan order.
func Cross(size, inset int) []grid.Entity {
	var entities []grid.Entity
	for row := inset; row < size-inset; row++ {
		left, right := row, size-1-row
		if left > right {
			left, right = right, left
		}
		entities = append(entities, grid.Entity{
			Kind: grid.KindPolyanet,
			At:   grid.Coordinate{Row: row, Column: left},
		})
		if right != left {
			entities = append(entities, grid.Entity{
				Kind: grid.KindPolyanet,
				At:   grid.Coordinate{Row: row, Column: right},
			})
		}
	}
	return entities
}

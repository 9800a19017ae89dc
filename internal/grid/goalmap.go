package grid

import (
	"fmt"
	"strings"
)

// Cell labels as served by the remote API. Matching is case-sensitive.
const (
	labelSpace    = "SPACE"
	labelPolyanet = "POLYANET"
	suffixSoloon  = "_SOLOON"
	suffixCometh  = "_COMETH"
)

// validColors and validDirections gate the attribute extracted from a label
// prefix. A label with an unknown prefix is treated like any other
// unrecognized label and skipped.
var validColors = map[string]bool{
	"blue":   true,
	"red":    true,
	"purple": true,
	"white":  true,
}

var validDirections = map[string]bool{
	"up":    true,
	"down":  true,
	"left":  true,
	"right": true,
}

// FromGoalPayload validates the decoded JSON body of the goal endpoint and
// returns the cell grid. The payload must be an object whose "goal" field is
// a non-empty array of equal-length arrays of strings; anything else is a
// malformed goal map, which is fatal to a run.
func FromGoalPayload(payload any) ([][]string, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("goal payload is %T, expected a JSON object", payload)
	}
	rawRows, ok := obj["goal"].([]any)
	if !ok {
		return nil, fmt.Errorf("goal field is %T, expected an array of rows", obj["goal"])
	}
	if len(rawRows) == 0 {
		return nil, fmt.Errorf("goal map has no rows")
	}

	cells := make([][]string, len(rawRows))
	width := -1
	for i, rawRow := range rawRows {
		row, ok := rawRow.([]any)
		if !ok {
			return nil, fmt.Errorf("goal row %d is %T, expected an array of cells", i, rawRow)
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("goal map is not rectangular: row %d has %d cells, expected %d", i, len(row), width)
		}
		cells[i] = make([]string, len(row))
		for j, rawCell := range row {
			cell, ok := rawCell.(string)
			if !ok {
				return nil, fmt.Errorf("goal cell (%d,%d) is %T, expected a string label", i, j, rawCell)
			}
			cells[i][j] = cell
		}
	}
	return cells, nil
}

// Flatten converts the cell grid into the ordered entity list, scanning rows
// top-to-bottom and columns left-to-right. SPACE cells and unrecognized
// labels produce nothing; the result order is the submission order.
func Flatten(cells [][]string) []Entity {
	var entities []Entity
	for row, line := range cells {
		for column, label := range line {
			at := Coordinate{Row: row, Column: column}
			if entity, ok := classify(label, at); ok {
				entities = append(entities, entity)
			}
		}
	}
	return entities
}

// classify maps one cell label to its entity, if any.
func classify(label string, at Coordinate) (Entity, bool) {
	switch {
	case label == labelPolyanet:
		return Entity{Kind: KindPolyanet, At: at}, true
	case strings.HasSuffix(label, suffixSoloon):
		color := strings.ToLower(strings.TrimSuffix(label, suffixSoloon))
		if !validColors[color] {
			return Entity{}, false
		}
		return Entity{Kind: KindSoloon, At: at, Color: color}, true
	case strings.HasSuffix(label, suffixCometh):
		direction := strings.ToLower(strings.TrimSuffix(label, suffixCometh))
		if !validDirections[direction] {
			return Entity{}, false
		}
		return Entity{Kind: KindCometh, At: at, Direction: direction}, true
	default:
		// SPACE and anything unrecognized.
		return Entity{}, false
	}
}

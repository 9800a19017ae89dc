// Package grid models the goal map served by the megaverse API and the
// placeable entities derived from it. The goal map is a rectangular grid of
// uppercase cell labels; flattening converts it into an ordered list of
// immutable entity values in row-major scan order.
package grid

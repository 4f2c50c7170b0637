// Package grid holds the tile occupancy map and answers point-in-wall queries.
// A Grid never changes after construction and is safe to share read-only.
package grid

import (
	"fmt"
	"math"
)

// Grid is a fixed rows x cols occupancy matrix laid over continuous world
// space, one tile per tileSize x tileSize square.
type Grid struct {
	cells    [][]bool // [row][col]
	rows     int
	cols     int
	tileSize float64
}

// New builds a Grid from an occupancy matrix indexed [row][col].
// The matrix is copied; later changes to cells do not affect the Grid.
func New(cells [][]bool, tileSize float64) (*Grid, error) {
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		return nil, fmt.Errorf("invalid tile size: %v", tileSize)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("grid has no rows")
	}
	cols := len(cells[0])
	if cols == 0 {
		return nil, fmt.Errorf("grid has no columns")
	}

	copied := make([][]bool, len(cells))
	for y, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("grid is not rectangular: row %d has %d columns, expected %d", y, len(row), cols)
		}
		copied[y] = append([]bool(nil), row...)
	}

	return &Grid{
		cells:    copied,
		rows:     len(cells),
		cols:     cols,
		tileSize: tileSize,
	}, nil
}

// FromInts builds a Grid from a matrix where any non-zero value is a wall.
func FromInts(tiles [][]int, tileSize float64) (*Grid, error) {
	cells := make([][]bool, len(tiles))
	for y, row := range tiles {
		cells[y] = make([]bool, len(row))
		for x, v := range row {
			cells[y][x] = v != 0
		}
	}
	return New(cells, tileSize)
}

// Rows returns the number of tile rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of tile columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the side length of one tile in world units.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Width returns the world-space width of the map.
func (g *Grid) Width() float64 { return float64(g.cols) * g.tileSize }

// Height returns the world-space height of the map.
func (g *Grid) Height() float64 { return float64(g.rows) * g.tileSize }

// InBounds reports whether (x, y) lies inside the map's world-space bounds,
// edges included.
func (g *Grid) InBounds(x, y float64) bool {
	return x >= 0 && x <= g.Width() && y >= 0 && y <= g.Height()
}

// HasWallAt reports whether the world point (x, y) is inside a wall.
// Points outside the map, and points on the far right or bottom edge, count
// as walls.
func (g *Grid) HasWallAt(x, y float64) bool {
	if !g.InBounds(x, y) {
		return true
	}
	col := int(math.Floor(x / g.tileSize))
	row := int(math.Floor(y / g.tileSize))
	if col >= g.cols || row >= g.rows {
		return true
	}
	return g.cells[row][col]
}

// IsWall reports whether the tile at (col, row) is occupied. Out-of-range
// tiles are walls.
func (g *Grid) IsWall(col, row int) bool {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return true
	}
	return g.cells[row][col]
}

// CellAt returns the tile coordinate containing the world point (x, y).
func (g *Grid) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / g.tileSize)), int(math.Floor(y / g.tileSize))
}

// Enclosed reports whether every border tile is a wall.
func (g *Grid) Enclosed() bool {
	for x := 0; x < g.cols; x++ {
		if !g.cells[0][x] || !g.cells[g.rows-1][x] {
			return false
		}
	}
	for y := 0; y < g.rows; y++ {
		if !g.cells[y][0] || !g.cells[y][g.cols-1] {
			return false
		}
	}
	return true
}

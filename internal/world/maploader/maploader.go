// Package maploader reads tile maps from JSON files and builds the occupancy
// grid and spawn pose from them.
package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// SpawnPoint defines the player's start position in world units
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapData represents the map file contents
type MapData struct {
	Name           string      `json:"name"`
	TileSize       float64     `json:"tile_size"`       // World units per tile side
	Tiles          [][]int     `json:"tiles"`           // [row][col], non-zero = wall
	PlayerSpawn    *SpawnPoint `json:"player_spawn"`    // nil = centre of the map
	HeadingDegrees *float64    `json:"heading_degrees"` // nil = 90 (facing down)
}

// Map represents a loaded map with its occupancy grid
type Map struct {
	Data    *MapData
	Grid    *grid.Grid
	Spawn   geom.Point
	Heading float64 // radians
}

const defaultHeadingDegrees = 90

// DefaultMapData returns the built-in 15x11 level.
func DefaultMapData() *MapData {
	return &MapData{
		Name:     "default",
		TileSize: 80,
		Tiles: [][]int{
			{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1},
			{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1},
			{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			{1, 1, 1, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		},
	}
}

// LoadMap loads a map from a JSON file
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}
	if mapData.Name == "" {
		mapData.Name = strings.TrimSuffix(filepath.Base(mapPath), filepath.Ext(mapPath))
	}

	m, err := Build(&mapData)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}
	return m, nil
}

// Build validates map data and constructs its grid and spawn pose.
func Build(data *MapData) (*Map, error) {
	if err := validateMapData(data); err != nil {
		return nil, err
	}

	g, err := grid.FromInts(data.Tiles, data.TileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	spawn := geom.Point{X: g.Width() / 2, Y: g.Height() / 2}
	if data.PlayerSpawn != nil {
		spawn = geom.Point{X: data.PlayerSpawn.X, Y: data.PlayerSpawn.Y}
	}
	if g.HasWallAt(spawn.X, spawn.Y) {
		return nil, fmt.Errorf("player spawn (%.1f, %.1f) is inside a wall", spawn.X, spawn.Y)
	}

	heading := float64(defaultHeadingDegrees)
	if data.HeadingDegrees != nil {
		heading = *data.HeadingDegrees
	}

	return &Map{
		Data:    data,
		Grid:    g,
		Spawn:   spawn,
		Heading: geom.NormalizeAngle(geom.Radians(heading)),
	}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.TileSize <= 0 {
		return fmt.Errorf("invalid tile size: %v", data.TileSize)
	}
	if len(data.Tiles) == 0 {
		return fmt.Errorf("map has no tiles")
	}

	width := len(data.Tiles[0])
	for y, row := range data.Tiles {
		if len(row) != width {
			return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, width, len(row))
		}
	}

	return nil
}

// MapEntry represents a map file discovered in a directory
type MapEntry struct {
	Name string // File name without extension
	Path string
}

// ScanDirectory lists the JSON map files in dir, sorted by name.
func ScanDirectory(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		maps = append(maps, MapEntry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps, nil
}

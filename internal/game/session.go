package game

import (
	"fmt"
	"log"

	"chosenoffset.com/raycaster/internal/simulation"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

// Session is a validated config and the map it runs on.
type Session struct {
	Config *simulation.Config
	Map    *maploader.Map
}

// LoadSession loads the config and the map. An empty mapPath selects the
// built-in map. The screen size is resolved against the map before
// validation, so a zero size in the config means "as large as the map".
func LoadSession(configPath, mapPath string) (*Session, error) {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var gameMap *maploader.Map
	if mapPath == "" {
		log.Printf("Using built-in map")
		gameMap, err = maploader.Build(maploader.DefaultMapData())
	} else {
		log.Printf("Loading map: %s", mapPath)
		gameMap, err = maploader.LoadMap(mapPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	cfg.Resolve(gameMap.Grid.Width(), gameMap.Grid.Height())
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	log.Printf("Map %q: %dx%d tiles of %.0f, screen %dx%d, %d rays",
		gameMap.Data.Name, gameMap.Grid.Cols(), gameMap.Grid.Rows(), gameMap.Grid.TileSize(),
		cfg.View.ScreenWidth, cfg.View.ScreenHeight, cfg.NumRays())
	return &Session{Config: cfg, Map: gameMap}, nil
}

// NewGame creates a game for the session.
func (s *Session) NewGame(deps Deps) (*Game, error) {
	return New(s.Config, s.Map, deps)
}

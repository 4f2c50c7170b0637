package main

import (
	"flag"
	"fmt"
	"log"

	"chosenoffset.com/raycaster/internal/audio"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/render"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
	"chosenoffset.com/raycaster/internal/render/terminal"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

func main() {
	var configPath, mapPath, mapsDir, backendName string
	var listMaps, sound bool

	flag.StringVar(&configPath, "config", "data/config.json", "simulation config file (missing file = defaults)")
	flag.StringVar(&mapPath, "map", "", "map file (empty = built-in map)")
	flag.StringVar(&mapsDir, "maps-dir", "data/maps", "directory scanned by -list-maps")
	flag.BoolVar(&listMaps, "list-maps", false, "list available maps and exit")
	flag.StringVar(&backendName, "backend", "ebiten", "frontend: ebiten or terminal")
	flag.BoolVar(&sound, "sound", false, "play a tone when walking into a wall")
	flag.Parse()

	if listMaps {
		log.Printf("Scanning %s for maps...", mapsDir)
		maps, err := maploader.ScanDirectory(mapsDir)
		if err != nil {
			log.Fatalf("Failed to scan maps directory: %v", err)
		}
		for _, m := range maps {
			fmt.Printf("%-16s %s\n", m.Name, m.Path)
		}
		return
	}

	session, err := game.LoadSession(configPath, mapPath)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	backend, err := newBackend(backendName)
	if err != nil {
		log.Fatalf("Failed to create %s backend: %v", backendName, err)
	}

	var bump *audio.BumpPlayer
	if sound {
		bump = audio.NewBumpPlayer()
		if err := bump.Initialize(); err != nil {
			// Non-fatal, the viewer runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		defer bump.Cleanup()
	}

	g, err := session.NewGame(game.Deps{
		Renderer: backend.Renderer,
		Input:    backend.Input,
		Bump:     bump,
	})
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	backend.Engine.SetWindowSize(session.Config.View.ScreenWidth, session.Config.View.ScreenHeight)
	backend.Engine.SetWindowTitle(fmt.Sprintf("Raycaster - %s", session.Map.Data.Name))
	backend.Engine.SetWindowResizable(true)

	log.Printf("Starting %s backend...", backendName)
	if err := backend.Engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newBackend(name string) (render.Backend, error) {
	switch name {
	case "ebiten":
		return ebitenrender.NewBackend()
	case "terminal":
		return terminal.NewBackend(), nil
	default:
		return render.Backend{}, fmt.Errorf("unknown backend %q (supported: ebiten, terminal)", name)
	}
}

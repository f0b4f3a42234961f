package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/tilekit/config"
	"github.com/milk9111/tilekit/edit"
	"github.com/milk9111/tilekit/project"
	"github.com/milk9111/tilekit/sysclip"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file; reloaded when it changes")
	inPath := flag.String("in", "", "Project file to open (.yaml, or lz4-compressed otherwise)")
	outPath := flag.String("out", "", "Where Ctrl+S writes the compressed project")
	pngPath := flag.String("png", "", "Where Ctrl+E exports the target surface as PNG")
	scriptPath := flag.String("script", "", "Tengo filter run over the target on Ctrl+Enter")
	verbose := flag.Bool("v", false, "Development logging at debug level")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *verbose {
		cfg.Log.Development = true
		cfg.Log.Level = "debug"
	}
	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	doc, err := openProject(*inPath, cfg)
	if err != nil {
		logger.Fatal("open project", zap.String("path", *inPath), zap.Error(err))
	}
	tileSet, mapID, err := ensureContent(doc)
	if err != nil {
		logger.Fatal("seed project", zap.Error(err))
	}

	clip := sysclip.New()
	logger.Info("clipboard", zap.String("backend", clip.Backend()))

	session := edit.NewSession(doc,
		edit.WithLogger(logger.Named("edit")),
		edit.WithMirror(clip),
		edit.WithUndoLimit(cfg.UndoLimit),
		edit.WithZoom(cfg.ZoomBounds()),
	)
	if err := session.SetTarget(project.TileSetSurface(tileSet)); err != nil {
		logger.Fatal("target tileset", zap.Error(err))
	}

	game := NewEditorGame(logger, doc, session, tileSet, mapID)
	defer game.Close()
	game.savePath = *outPath
	game.exportPath = *pngPath
	game.scriptPath = *scriptPath
	if *configPath != "" {
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			game.watcher = w
		}
	}

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Tile Editor")

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("editor stopped", zap.Error(err))
	}
}

func openProject(path string, cfg config.Config) (*project.Project, error) {
	if path == "" {
		return project.New(cfg.Settings()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc *project.Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = project.Decode(data)
	default:
		doc, err = project.DecodeCompressed(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.SetDefaults(cfg.Settings())
	return doc, nil
}

// ensureContent returns the first tileset and map, creating a palette,
// tileset and map when the project has none.
func ensureContent(doc *project.Project) (project.ID, project.ID, error) {
	if len(doc.Palettes()) == 0 {
		if _, err := doc.AddPalette(); err != nil {
			return 0, 0, err
		}
	}
	if len(doc.TileSets()) == 0 {
		if _, err := doc.AddTileSet(); err != nil {
			return 0, 0, err
		}
	}
	if len(doc.Maps()) == 0 {
		if _, err := doc.AddMap(); err != nil {
			return 0, 0, err
		}
	}
	return doc.TileSets()[0], doc.Maps()[0], nil
}

package main

import (
	"io/fs"

	"go.uber.org/zap"

	"github.com/rayportfolio/stage"
	"github.com/rayportfolio/stage/config"
	"github.com/rayportfolio/stage/music"
)

// App is the assembled page: a manager with its scenes and the music store
// shared by the visualizer and the keyboard controls.
type App struct {
	Manifest *config.Manifest
	Manager  *stage.Manager
	Scenes   stage.SceneRegistry
	Store    *music.Store
	Controls *music.Controls
	Logger   *zap.Logger
}

func provideLogger(m *config.Manifest) (*zap.Logger, func(), error) {
	logger, err := newLogger(m.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideManager(logger *zap.Logger, m *config.Manifest) *stage.Manager {
	return stage.NewManager(
		stage.WithLogger(logger),
		stage.WithDebug(m.Window.Debug),
	)
}

func provideOpener(assets fs.FS) music.TrackOpener {
	return music.NewEbitenOpener(assets)
}

func provideControls(store *music.Store, m *config.Manifest) *music.Controls {
	return music.NewControls(store, firstTrack(m.Music))
}

func provideScenes(store *music.Store, controls *music.Controls, opener music.TrackOpener, m *config.Manifest) stage.SceneRegistry {
	return stage.SceneRegistry{
		"bubbles":    bubbleScene,
		"visualizer": visualizerScene(store, controls, opener, tracks(m.Music)),
	}
}

func newApp(m *config.Manifest, manager *stage.Manager, scenes stage.SceneRegistry, store *music.Store, controls *music.Controls, logger *zap.Logger) *App {
	return &App{
		Manifest: m,
		Manager:  manager,
		Scenes:   scenes,
		Store:    store,
		Controls: controls,
		Logger:   logger,
	}
}

// Mount lays out the page and initializes every render.
func (a *App) Mount() error {
	return a.Manager.Mount(a.Manifest, a.Scenes)
}

// Close detaches the manager from the visibility gate.
func (a *App) Close() {
	a.Manager.Close()
}

//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"io/fs"

	"github.com/google/wire"

	"github.com/rayportfolio/stage/config"
	"github.com/rayportfolio/stage/music"
)

func initApp(m *config.Manifest, assets fs.FS) (*App, func(), error) {
	wire.Build(
		provideLogger,
		provideManager,
		music.NewStore,
		provideControls,
		provideOpener,
		provideScenes,
		newApp,
	)
	return nil, nil, nil
}

// Command portfolio opens the portfolio page in a window: a bubble hero and
// a music visualizer laid out on one scrolling page.
//
// Scroll with the mouse wheel. In the visualizer, space plays and pauses,
// tab switches the track and i inverts the waves.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rayportfolio/stage"
	"github.com/rayportfolio/stage/config"
)

//go:embed page.yaml
var defaultPage []byte

func main() {
	var (
		manifestPath = flag.String("manifest", "", "page manifest; the built-in page when empty")
		assetsDir    = flag.String("assets", "assets", "directory holding images and music")
		scriptPath   = flag.String("script", "", "replay a YAML visit script")
		exitOnEnd    = flag.Bool("exit", false, "quit when the script finishes")
	)
	flag.Parse()

	if err := run(*manifestPath, *assetsDir, *scriptPath, *exitOnEnd); err != nil {
		fmt.Fprintln(os.Stderr, "portfolio:", err)
		os.Exit(1)
	}
}

func run(manifestPath, assetsDir, scriptPath string, exitOnEnd bool) error {
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	app, cleanup, err := initApp(manifest, os.DirFS(assetsDir))
	if err != nil {
		return err
	}
	defer cleanup()
	defer app.Close()

	if err := app.Mount(); err != nil {
		// Failed renders are skipped; the rest of the page still runs.
		app.Logger.Error("page mounted with errors", zap.Error(err))
	}

	cfg := stage.RunConfig{
		Title:           manifest.Window.Title,
		Width:           manifest.Window.Width,
		Height:          manifest.Window.Height,
		Resizable:       manifest.Window.Resizable,
		ExitOnScriptEnd: exitOnEnd,
	}
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		cfg.Script, err = stage.LoadScript(f)
		f.Close()
		if err != nil {
			return err
		}
		cfg.Script.OnMark = func(label string) {
			app.Logger.Info("script mark", zap.String("label", label))
		}
	}

	app.Logger.Info("opening window",
		zap.String("title", cfg.Title),
		zap.Int("renders", len(app.Manager.Registrations())),
	)
	return stage.Run(app.Manager, cfg)
}

func loadManifest(path string) (*config.Manifest, error) {
	if path == "" {
		return config.Parse(defaultPage)
	}
	return config.LoadFile(path)
}

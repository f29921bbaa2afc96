package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/tkaneko/qvox/pkg/volume"
	"github.com/tkaneko/qvox/pkg/watcher"
)

// setupFileWatcher watches the volume header and, when the data lives in
// a separate raw file, the raw file as well
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	filesToWatch := []string{app.FileWatch.sourceFile}
	if raw := volume.DataFile(app.FileWatch.sourceFile); raw != "" {
		filesToWatch = append(filesToWatch, raw)
	}
	log.Printf("[app] watching %d file(s) under %s", len(filesToWatch), filepath.Dir(app.FileWatch.sourceFile))

	callback := func(changedFile string) {
		log.Printf("[app] file changed: %s", changedFile)
		app.FileWatch.needsReload = true
	}

	if err := fw.Watch(filesToWatch, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

// reloadVolume reloads the volume from the source file in the background
func (app *App) reloadVolume() {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	log.Printf("[app] reloading volume...")

	go func() {
		vol, err := volume.Parse(app.FileWatch.sourceFile)
		if err != nil {
			log.Printf("[app] reload failed: %v", err)
			app.FileWatch.isLoading = false
			return
		}
		app.FileWatch.loadedVolume = vol
	}()
}

// applyLoadedVolume installs a freshly loaded volume (main thread only).
// Masks and history are only meaningful against the volume they were
// captured from, so the clipping session is reset.
func (app *App) applyLoadedVolume() {
	vol := app.FileWatch.loadedVolume
	if vol == nil {
		return
	}

	// Preserve the camera orientation across the reload
	savedDistance := app.Camera.distance
	savedAngleX := app.Camera.angleX
	savedAngleY := app.Camera.angleY

	app.adoptVolume(vol)
	app.Clip.engine.SetGeometry(vol.Geom)
	app.Clip.selector.Disable()

	app.Camera.distance = savedDistance
	app.Camera.angleX = savedAngleX
	app.Camera.angleY = savedAngleY
	app.updateCamera()

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	log.Printf("[app] volume reloaded in %.2fs", elapsed.Seconds())

	app.FileWatch.loadedVolume = nil
	app.FileWatch.isLoading = false
}

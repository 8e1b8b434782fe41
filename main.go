// Package main provides the entry point for the Region Zoom application.
package main

import (
	"log"
	"log/slog"
	"os"

	"region-zoom/internal/app"
	"region-zoom/internal/version"
	"region-zoom/ui/mainwindow"
	"region-zoom/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/gogpu/gg"
)

const appID = "io.github.regionzoom"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Region Zoom %s", version.String())

	if os.Getenv("REGION_ZOOM_DEBUG") != "" {
		gg.SetLogger(slog.Default())
	}

	a := fyneapp.NewWithID(appID)
	a.Settings().SetTheme(&app.Theme{})
	appPrefs := prefs.Load()

	win := mainwindow.New(a, appPrefs)
	win.SetMaster()

	// Handle command line arguments
	if len(os.Args) > 1 {
		path := os.Args[1]
		if err := win.LoadImage(path); err != nil {
			log.Printf("Failed to load image %s: %v", path, err)
		}
	}

	win.ShowAndRun()
}

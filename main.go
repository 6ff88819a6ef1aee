// Package main provides the entry point for the Driftscope viewer.
package main

import (
	"log"
	"os"

	"driftscope/internal/app"
	"driftscope/ui/mainwindow"
	"driftscope/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const (
	appTitle   = "Driftscope"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	a := fyneapp.NewWithID("io.driftscope.viewer")
	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(a, appState, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		scanPath := os.Args[1]
		if err := appState.LoadBundle(scanPath); err != nil {
			log.Printf("Failed to load scan %s: %v", scanPath, err)
		}
	}

	defer func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	}()

	win.ShowAndRun()
}

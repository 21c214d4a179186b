package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/roshambo/internal/app"
	"github.com/ayusman/roshambo/internal/config"
	"github.com/ayusman/roshambo/internal/detector"
	"github.com/ayusman/roshambo/internal/server"
	"github.com/ayusman/roshambo/internal/store"
)

func main() {
	configPath := flag.String("config", "roshambo.yaml", "path to the YAML settings file")
	cameraID := flag.Int("camera", -1, "camera device index (overrides the settings file)")
	writeThresholds := flag.String("write-thresholds", "", "write the default colour thresholds to this INI file and exit")
	writeCalibration := flag.String("write-calibration", "", "write a distortion-free 640x480 calibration profile to this YAML file and exit")
	flag.Parse()

	if *writeCalibration != "" {
		if err := config.SaveCalibration(*writeCalibration, config.PinholeCalibration(640, 480)); err != nil {
			log.Fatalf("Failed to write calibration: %v", err)
		}
		fmt.Printf("Wrote calibration template to %s\n", *writeCalibration)
		return
	}

	if *writeThresholds != "" {
		if err := config.SaveThresholds(*writeThresholds, detector.DefaultThresholds()); err != nil {
			log.Fatalf("Failed to write thresholds: %v", err)
		}
		fmt.Printf("Wrote default thresholds to %s\n", *writeThresholds)
		return
	}

	fmt.Println("Roshambo - Rock Paper Scissors")

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *cameraID >= 0 {
		settings.CameraID = *cameraID
	}

	// Initialize the store
	var st *store.Store
	if settings.DatabasePath != "" {
		if err := os.MkdirAll(filepath.Dir(settings.DatabasePath), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		st, err = store.New(settings.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
	}

	cfg := app.Config{
		Settings: settings,
		Store:    st,
	}

	if settings.ListenAddr != "" {
		cfg.Frames = server.NewFrameBuffer()
		cfg.Feed = server.NewHub()

		webDir := findWebDir()
		if webDir != "" {
			fmt.Printf("Serving static files from: %s\n", webDir)
		}

		srv := server.New(server.Config{
			StaticDir: webDir,
			Store:     st,
			Frames:    cfg.Frames,
			Feed:      cfg.Feed,
		})

		go func() {
			fmt.Printf("Starting server on %s\n", settings.ListenAddr)
			if err := srv.ListenAndServe(settings.ListenAddr); err != nil {
				log.Printf("Server stopped: %v", err)
			}
		}()
	}

	// The display window must live on the main thread.
	if err := app.New(cfg).Run(); err != nil {
		log.Printf("Game failed: %v", err)
		if st != nil {
			st.Close()
		}
		os.Exit(1)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.roshambo/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".roshambo", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

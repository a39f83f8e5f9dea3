package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/handlift/internal/app"
	"github.com/ayusman/handlift/internal/server"
	"github.com/ayusman/handlift/internal/store"
	"github.com/ayusman/handlift/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	controller := flag.String("controller", "", "path to the car controller executable")
	controllerTimeout := flag.Int("controller-timeout", 5000, "controller timeout in milliseconds")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("HandLift - Gesture Floor Selection")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".handlift")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "handlift.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Load tunable parameters, settings overriding the defaults
	runtime, err := app.LoadRuntimeConfig(st.Settings())
	if err != nil {
		log.Fatalf("Failed to load runtime config: %v", err)
	}

	a := app.New(app.Config{
		Store:          st,
		CameraID:       *cameraID,
		Runtime:        runtime,
		SinkExecutable: *controller,
		SinkTimeoutMs:  *controllerTimeout,
	})

	if err := a.Start(); err != nil {
		log.Printf("Failed to start pipeline (panel UI still available): %v", err)
	} else {
		a.SetEnabled(true)
		defer a.Stop()
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		State:     a,
	})

	fmt.Printf("Starting server on %s\n", *addr)

	if *noTray {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		log.Printf("Settings available at http://localhost%s/", *addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	a.OnDispatch(func(floor string) {
		t.SetLastFloor(floor)
	})

	// Blocks until Quit is chosen from the menu
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.handlift/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
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

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".handlift", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

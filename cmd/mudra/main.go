package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	withTray := flag.Bool("tray", false, "run with a system tray icon")
	modelPath := flag.String("model", "", "model artifact path (default: search common locations)")
	flag.Parse()

	fmt.Println("Mudra - Sign Language Typing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dbDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if err := st.Calibration().SeedDefaults(classify.DefaultOverrides(), defaultBindingNames()); err != nil {
		log.Fatalf("Failed to seed calibration: %v", err)
	}

	// Load the classifier model; the session stays startable-but-rejected
	// without one so calibration and transcripts remain usable.
	candidates := classify.DefaultModelPaths()
	if *modelPath != "" {
		candidates = []string{*modelPath}
	}
	model, err := classify.FindAndLoadModel(candidates)
	if err != nil {
		log.Printf("No classifier model loaded: %v", err)
	}

	gate, bindings, err := loadCalibration(st)
	if err != nil {
		log.Fatalf("Failed to load calibration: %v", err)
	}

	camera := capture.NewCamera(settingInt(st, "camera_device", 0), capture.Tuning{
		Exposure:   settingFloat(st, "camera_exposure", -3),
		Gain:       settingFloat(st, "camera_gain", 100),
		Brightness: settingFloat(st, "camera_brightness", 100),
	})

	det, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to initialize hand detector: %v", err)
	}
	defer det.Close()

	hub := server.NewEventsHub()

	var publisher session.Publisher = hub
	var t *tray.Tray
	if *withTray {
		t = tray.New()
		publisher = multiPublisher{hub, trayPublisher{t}}
	}

	sess := session.New(session.Config{
		Camera:            camera,
		Detector:          det,
		Model:             model,
		Gate:              gate,
		Bindings:          bindings,
		Publisher:         publisher,
		FrameInterval:     time.Duration(settingInt(st, "frame_interval_ms", 100)) * time.Millisecond,
		ActivityThreshold: settingFloat(st, "activity_threshold", 0),
	})

	srv := server.New(server.Config{
		StaticDir: findWebDir(),
		Store:     st,
		Session:   sess,
		Events:    hub,
	})

	if *withTray {
		go func() {
			log.Printf("Starting server on %s", *addr)
			if err := srv.ListenAndServe(*addr); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		}()
		runTray(t, sess, *addr)
		return
	}

	log.Printf("Starting server on %s", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// defaultBindingNames converts the built-in action bindings to their wire
// names for seeding the calibration table.
func defaultBindingNames() map[string]string {
	names := make(map[string]string)
	for label, action := range session.DefaultBindings() {
		names[label] = action.String()
	}
	return names
}

// loadCalibration builds the confidence gate and action bindings from the
// persisted calibration tables.
func loadCalibration(st *store.Store) (*classify.Gate, session.Bindings, error) {
	overrides, err := st.Calibration().Thresholds()
	if err != nil {
		return nil, nil, err
	}

	names, err := st.Calibration().Bindings()
	if err != nil {
		return nil, nil, err
	}

	bindings := make(session.Bindings, len(names))
	for label, name := range names {
		bindings[label] = session.ActionFromName(name)
	}

	return classify.NewGate(classify.DefaultThreshold, overrides), bindings, nil
}

func settingInt(st *store.Store, key string, fallback int) int {
	value, err := st.Settings().Get(key, strconv.Itoa(fallback))
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid setting %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func settingFloat(st *store.Store, key string, fallback float64) float64 {
	value, err := st.Settings().Get(key, strconv.FormatFloat(fallback, 'f', -1, 64))
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid setting %s=%q, using %v", key, value, fallback)
		return fallback
	}
	return f
}

// multiPublisher fans events out to several publishers.
type multiPublisher []session.Publisher

func (m multiPublisher) PublishEmission(e session.Emission) {
	for _, p := range m {
		p.PublishEmission(e)
	}
}

func (m multiPublisher) PublishStatus(s session.Status) {
	for _, p := range m {
		p.PublishStatus(s)
	}
}

// trayPublisher mirrors session events into the tray menu.
type trayPublisher struct {
	t *tray.Tray
}

func (p trayPublisher) PublishEmission(e session.Emission) {
	p.t.SetLastSign(e.Character)
}

func (p trayPublisher) PublishStatus(s session.Status) {
	// Keep the toggle in sync with stops the menu did not initiate
	p.t.SetEnabled(s.State == session.StatusStarted)
}

// runTray blocks on the system tray loop, toggling detection from the menu.
func runTray(t *tray.Tray, sess *session.Session, addr string) {
	t.OnToggle(func(enabled bool) {
		if enabled {
			if err := sess.Start(); err != nil {
				log.Printf("Failed to start detection: %v", err)
				t.SetEnabled(false)
			}
			return
		}
		sess.Stop()
	})

	t.OnOpenUI(func() {
		openBrowser("http://localhost" + addr)
	})

	t.OnQuit(func() {
		sess.Stop()
		sess.Wait()
	})

	t.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
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

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

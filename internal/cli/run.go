package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/streakbadge-io/streakbadge/internal/autostart"
	"github.com/streakbadge-io/streakbadge/internal/config"
	"github.com/streakbadge-io/streakbadge/internal/geometry"
	"github.com/streakbadge-io/streakbadge/internal/models"
	"github.com/streakbadge-io/streakbadge/internal/render"
	"github.com/streakbadge-io/streakbadge/internal/status"
	"github.com/streakbadge-io/streakbadge/internal/tray"
	"github.com/streakbadge-io/streakbadge/internal/tui"
	"github.com/streakbadge-io/streakbadge/internal/watcher"
	"github.com/streakbadge-io/streakbadge/internal/widget"
)

var (
	flagTray    bool
	flagScreens []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the badge",
	Long: `Run the badge.

By default this opens the terminal preview, which mirrors exactly what the
badge window shows and accepts the same interactions. With --tray the badge
runs headless behind a system tray menu instead.

Credentials can be supplied through the environment (or a .env file) as
STREAKBADGE_CLIENT_ID, STREAKBADGE_CLIENT_SECRET and STREAKBADGE_USERNAME;
they seed the settings on first run.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagTray, "tray", false, "Run behind a system tray menu instead of the terminal preview")
	runCmd.Flags().StringArrayVar(&flagScreens, "screen", nil, "Screen geometry as WxH or WxH+X+Y (repeatable, first is primary)")
}

func runRun(cmd *cobra.Command, args []string) error {
	log.SetPrefix("[streakbadge] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// A .env next to the binary is a dev convenience; absence is fine.
	_ = godotenv.Load()

	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	seedCredentialsFromEnv(store)

	topology, err := parseTopology(flagScreens)
	if err != nil {
		return err
	}

	templatesPath, err := config.TemplatesFile()
	if err != nil {
		return err
	}
	templates, err := render.Load(templatesPath)
	if err != nil {
		log.Printf("template overrides unusable, using built-ins: %v", err)
	}

	var reg widget.Autostarter
	if xdg, err := autostart.NewXDG(); err != nil {
		log.Printf("autostart unavailable: %v", err)
	} else {
		reg = xdg
	}

	if flagTray {
		return runWithTray(store, topology, templates, reg)
	}
	return runWithPreview(store, topology, templates, reg)
}

// runWithPreview runs the badge inside the terminal preview.
func runWithPreview(store *config.Store, topology widget.Topology, templates *render.Templates, reg widget.Autostarter) error {
	ref := tui.NewRef()

	var coord *widget.Coordinator
	poller := status.NewPoller(status.NewClient(), status.DefaultInterval, store.Load().Credentials, func(s models.StatusSample) {
		coord.StatusUpdate(s)
	})

	coord = widget.New(widget.Config{
		Store:     store,
		Surface:   tui.NewSurface(ref),
		Topology:  topology,
		Templates: templates,
		Poller:    poller,
		Autostart: reg,
		OnStateChange: func(st widget.State) {
			ref.Send(tui.StateChangedMsg{State: st})
		},
	})

	poller.Start()
	defer poller.Stop()

	w, err := watcher.New(store.Path(), coord)
	if err != nil {
		log.Printf("settings watcher unavailable: %v", err)
	} else if err := w.Start(); err != nil {
		log.Printf("settings watcher failed to start: %v", err)
	} else {
		defer w.Stop()
	}

	coord.Start()

	err = tui.Run(coord, ref)

	// The preview may exit without the widget having shut down (e.g. on a
	// terminal error); make sure settings are flushed either way.
	coord.RequestExit()
	select {
	case <-coord.Done():
	case <-time.After(2 * time.Second):
		log.Printf("widget did not shut down cleanly")
	}
	return err
}

// runWithTray runs the badge headless behind a system tray menu.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(store *config.Store, topology widget.Topology, templates *render.Templates, reg widget.Autostarter) error {
	var coord *widget.Coordinator
	poller := status.NewPoller(status.NewClient(), status.DefaultInterval, store.Load().Credentials, func(s models.StatusSample) {
		coord.StatusUpdate(s)
	})

	coord = widget.New(widget.Config{
		Store:         store,
		Surface:       widget.LogSurface{},
		Topology:      topology,
		Templates:     templates,
		Poller:        poller,
		Autostart:     reg,
		OnStateChange: tray.UpdateStatus,
	})

	var w *watcher.Watcher

	onStart := func() {
		poller.Start()

		var err error
		w, err = watcher.New(store.Path(), coord)
		if err != nil {
			log.Printf("settings watcher unavailable: %v", err)
		} else if err := w.Start(); err != nil {
			log.Printf("settings watcher failed to start: %v", err)
			w = nil
		}

		coord.Start()

		// Handle OS signals — quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		coord.RequestExit()
		select {
		case <-coord.Done():
		case <-time.After(2 * time.Second):
			log.Printf("widget did not shut down cleanly")
		}
		poller.Stop()
		if w != nil {
			w.Stop()
		}
		fmt.Println("Badge stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(coord, onStart, onExit)
	return nil
}

// seedCredentialsFromEnv fills in credentials from the environment when the
// settings file has none. Stored credentials always win.
func seedCredentialsFromEnv(store *config.Store) {
	st := store.Load()
	if st.Credentials.Complete() {
		return
	}

	creds := models.Credentials{
		ClientID:     os.Getenv("STREAKBADGE_CLIENT_ID"),
		ClientSecret: os.Getenv("STREAKBADGE_CLIENT_SECRET"),
		Username:     os.Getenv("STREAKBADGE_USERNAME"),
	}
	if !creds.Complete() {
		return
	}

	st.Credentials = creds
	if err := store.Save(st); err != nil {
		log.Printf("failed to save environment credentials: %v", err)
	} else {
		log.Printf("seeded credentials from environment for %s", creds.Username)
	}
}

// parseTopology turns --screen flags into a screen layout. Without flags a
// single 1920x1080 screen is assumed.
func parseTopology(specs []string) (widget.StaticTopology, error) {
	if len(specs) == 0 {
		return widget.SingleScreen(1920, 1080), nil
	}

	rects := make([]geometry.Rect, 0, len(specs))
	for _, spec := range specs {
		r, err := parseScreen(spec)
		if err != nil {
			return widget.StaticTopology{}, err
		}
		rects = append(rects, r)
	}
	return widget.StaticTopology{Rects: rects}, nil
}

// parseScreen parses "WxH" or "WxH+X+Y".
func parseScreen(spec string) (geometry.Rect, error) {
	size := spec
	var offX, offY int

	if i := strings.IndexByte(spec, '+'); i >= 0 {
		size = spec[:i]
		rest := spec[i+1:]
		j := strings.IndexByte(rest, '+')
		if j < 0 {
			return geometry.Rect{}, fmt.Errorf("invalid screen spec %q (expected WxH or WxH+X+Y)", spec)
		}
		var err error
		if offX, err = strconv.Atoi(rest[:j]); err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid screen spec %q: %v", spec, err)
		}
		if offY, err = strconv.Atoi(rest[j+1:]); err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid screen spec %q: %v", spec, err)
		}
	}

	k := strings.IndexByte(size, 'x')
	if k < 0 {
		return geometry.Rect{}, fmt.Errorf("invalid screen spec %q (expected WxH or WxH+X+Y)", spec)
	}
	width, err := strconv.Atoi(size[:k])
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid screen spec %q: %v", spec, err)
	}
	height, err := strconv.Atoi(size[k+1:])
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("invalid screen spec %q: %v", spec, err)
	}
	if width <= 0 || height <= 0 {
		return geometry.Rect{}, fmt.Errorf("invalid screen spec %q: dimensions must be positive", spec)
	}

	return geometry.Rect{X: offX, Y: offY, Width: width, Height: height}, nil
}

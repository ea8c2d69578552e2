package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zigzagg16/dragster/internal/bridge"
	"github.com/zigzagg16/dragster/internal/config"
	"github.com/zigzagg16/dragster/internal/haptics"
	"github.com/zigzagg16/dragster/internal/tui"
	"github.com/zigzagg16/dragster/pkg/drag"
	"github.com/zigzagg16/dragster/pkg/events"
	"github.com/zigzagg16/dragster/pkg/ports"
)

var (
	// Version is set at build time
	Version = "dev"

	configPath    string
	bridgeEnabled bool
	bridgePort    int
	noAudio       bool
	showVersion   bool
)

var rootCmd = &cobra.Command{
	Use:   "dragster",
	Short: "A draggable drawer panel for the terminal",
	Long: `Dragster renders a bottom-anchored drawer panel you drag with the mouse.
Pull past the travel limits and it rubber-bands; let go and it snaps open or
closed, or stays put when released mid-travel.

Basic Usage:
  dragster                      # Run with the built-in configuration
  dragster -f dragster.toml     # Run with a config file (hot-reloaded on save)

Bridge Examples:
  dragster --bridge             # Expose state over HTTP (default port 7867)
  dragster --bridge-port 8000   # Use a custom bridge port

With the bridge running:
  GET  /state                   # Current position, percentage and phase
  GET  /ws                      # Websocket stream of drag events
  POST /open, /close            # Remote open/close ({"animated": false} optional)`,
	Args: cobra.NoArgs,
	Run:  runApp,
}

func init() {
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.Flags().StringVarP(&configPath, "config", "f", "", "Path to dragster.toml (defaults to the built-in configuration)")
	rootCmd.Flags().BoolVar(&bridgeEnabled, "bridge", false, "Expose the state bridge over HTTP")
	rootCmd.Flags().IntVar(&bridgePort, "bridge-port", 0, "State bridge port (overrides the config file)")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "Disable the audio haptics backend")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runApp(cmd *cobra.Command, args []string) {
	if showVersion {
		fmt.Printf("dragster %s\n", Version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the file.
	if bridgeEnabled {
		cfg.Bridge.Enabled = true
	}
	if bridgePort > 0 {
		cfg.Bridge.Port = bridgePort
	}

	bus := events.NewEventBusWithConfig(events.OrderedConfig())
	defer bus.Shutdown()

	model, err := tui.NewModel(cfg, bus, buildTactile(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting controller: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	var bridgeServer *bridge.Server
	if cfg.Bridge.Enabled {
		port, err := ports.FindAvailable(cfg.Bridge.Port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting bridge: %v\n", err)
			os.Exit(1)
		}
		if port != cfg.Bridge.Port {
			fmt.Fprintf(os.Stderr, "Bridge port %d busy, using %d\n", cfg.Bridge.Port, port)
		}
		bridgeServer = bridge.NewServer(port, bus, func(c bridge.Command) {
			p.Send(tui.CommandMsg{Action: c.Action, Animated: c.Animated})
		})
		go func() {
			if err := bridgeServer.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Bridge server error: %v\n", err)
			}
		}()
	}

	var watcher *config.Watcher
	if configPath != "" {
		watcher, err = config.NewWatcher(configPath, func(c *config.Config) {
			p.Send(tui.ReloadMsg{Config: c})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: config hot reload disabled: %v\n", err)
		}
	}

	_, runErr := p.Run()

	if watcher != nil {
		watcher.Close()
	}
	if bridgeServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		bridgeServer.Stop(ctx)
		cancel()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running dragster: %v\n", runErr)
		os.Exit(1)
	}
}

// buildTactile picks the configured haptics backend, degrading to quieter
// ones when a backend is unavailable.
func buildTactile(cfg *config.Config) drag.TactileSink {
	if !cfg.Haptics.Enabled {
		return haptics.Nop{}
	}

	switch cfg.Haptics.Backend {
	case "audio":
		if !noAudio {
			if a, err := haptics.NewAudio(); err == nil {
				return a
			}
		}
		return haptics.Bell{W: os.Stdout}
	case "bell":
		return haptics.Bell{W: os.Stdout}
	default:
		return haptics.Nop{}
	}
}

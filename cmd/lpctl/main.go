// Package main is the lpctl command line tool for driving a Launchpad
// Mini style grid controller.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	launchpad "github.com/lhpt2/launchpad-mini-control"
	"github.com/lhpt2/launchpad-mini-control/api"
	"github.com/lhpt2/launchpad-mini-control/config"
	"github.com/lhpt2/launchpad-mini-control/debug"
	"github.com/lhpt2/launchpad-mini-control/midi"
	"github.com/lhpt2/launchpad-mini-control/rtmidi"
	"github.com/lhpt2/launchpad-mini-control/tui"
)

var (
	version = "dev"

	flagDevice  string
	flagDefault bool
	flagDebug   bool
	flagFull    bool
	flagCopy    bool
	flagPort    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lpctl",
	Short: "Control a Launchpad Mini grid controller",
	Long: `lpctl drives a Launchpad Mini style grid controller over MIDI:
positional and bulk LED writes, grid mode, double buffering, duty cycle,
a live press monitor and a small REST API.

Examples:
  lpctl list
  lpctl all green --device "Launchpad Mini"
  lpctl duty 1 5
  lpctl monitor
  lpctl serve --port 8080`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			return debug.Enable()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "", "device port name (defaults to configured name)")
	rootCmd.PersistentFlags().BoolVar(&flagDefault, "default", false, "fall back to the platform default ports when the name resolves to nothing")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "write a debug log to "+debug.Path())

	blackoutCmd.Flags().BoolVar(&flagFull, "full", false, "also clear the control row")
	swapCmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the displayed buffer into the updating one")
	serveCmd.Flags().IntVarP(&flagPort, "port", "p", 0, "listen port (defaults to configured port)")

	rootCmd.AddCommand(listCmd, colorsCmd, resetCmd, allCmd, rowCmd,
		blackoutCmd, modeCmd, dutyCmd, swapCmd, monitorCmd, serveCmd)
}

// openDevice resolves the configured or flagged port pair. It never
// silently falls back: without --default a missing device is an error.
func openDevice(backend midi.Interface, cfg *config.Config) (*launchpad.Device, error) {
	name := flagDevice
	if name == "" {
		name = cfg.DeviceName
	}

	if name != "" {
		in, out, err := backend.InOut(name)
		if err == nil {
			debug.Log("lpctl", "opened device %q", name)
			return launchpad.New(in, out), nil
		}
		if !flagDefault && !cfg.UseDefaultPorts {
			return nil, err
		}
		debug.Log("lpctl", "device %q not found, using defaults: %v", name, err)
	}

	in, err := backend.DefaultInput()
	if err != nil {
		return nil, err
	}
	out, err := backend.DefaultOutput()
	if err != nil {
		return nil, err
	}
	return launchpad.New(in, out), nil
}

// withDevice runs fn against an opened device and tears the backend down.
func withDevice(fn func(dev *launchpad.Device, backend midi.Interface, cfg *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	backend := rtmidi.New()
	defer backend.Close()

	dev, err := openDevice(backend, cfg)
	if err != nil {
		return err
	}
	return fn(dev, backend, cfg)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List MIDI devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend := rtmidi.New()
		defer backend.Close()

		devs, err := backend.Devices()
		if err != nil {
			return err
		}

		fmt.Println("Input devices:")
		for _, d := range devs {
			if d.IsInput() {
				fmt.Printf("  %d: %s\n", d.ID, d.Name)
			}
		}
		fmt.Println()
		fmt.Println("Output devices:")
		for _, d := range devs {
			if d.IsOutput() {
				fmt.Printf("  %d: %s\n", d.ID, d.Name)
			}
		}
		return nil
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the palette color names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range launchpad.Gradient {
			fmt.Printf("  %-18s 0x%02X\n", c.String(), uint8(c))
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the device to its power-on state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.Reset()
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all <color>",
	Short: "Paint the whole note grid with one color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, err := parseColor(args[0])
		if err != nil {
			return err
		}
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.SetAll(color)
		})
	},
}

var rowCmd = &cobra.Command{
	Use:   "row <color>",
	Short: "Paint the round control-row buttons",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, err := parseColor(args[0])
		if err != nil {
			return err
		}
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.SetFirstRow(color)
		})
	},
}

var blackoutCmd = &cobra.Command{
	Use:   "blackout",
	Short: "Turn the LEDs off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			if flagFull {
				return dev.FullBlackout()
			}
			return dev.Blackout()
		})
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode <xy|drumrack>",
	Short: "Select the grid layout mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := launchpad.GridModeByName(args[0])
		if !ok {
			return fmt.Errorf("unknown grid mode %q", args[0])
		}
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.SelectMode(mode)
		})
	},
}

var dutyCmd = &cobra.Command{
	Use:   "duty <numerator> <denominator>",
	Short: "Set the LED refresh duty cycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		num, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return fmt.Errorf("numerator: %w", err)
		}
		den, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("denominator: %w", err)
		}
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.SetDutyCycle(uint8(num), uint8(den))
		})
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Swap the display buffers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, _ *config.Config) error {
			return dev.SwapBuffers(flagCopy)
		})
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Show pad presses live and echo them to the LEDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(dev *launchpad.Device, _ midi.Interface, cfg *config.Config) error {
			if err := dev.Reset(); err != nil {
				return err
			}
			interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
			if interval <= 0 {
				interval = 15 * time.Millisecond
			}
			return tui.Run(dev, interval)
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(func(dev *launchpad.Device, backend midi.Interface, cfg *config.Config) error {
			port := flagPort
			if port == 0 {
				port = cfg.APIPort
			}
			if port == 0 {
				port = 8080
			}
			fmt.Printf("listening on :%d\n", port)
			return api.NewServer(dev, backend).Run(port)
		})
	},
}

func parseColor(name string) (launchpad.Color, error) {
	color, ok := launchpad.ColorByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown color %q (try one of the names from `lpctl colors`)", name)
	}
	return color, nil
}

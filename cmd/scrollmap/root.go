package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/ui"
	"github.com/cornish/scrollmap/viewer"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply is not read as key input.
	_ = lipgloss.HasDarkBackground()
}

// flags holds the command line overrides.
type flags struct {
	ascii   bool
	noKitty bool
	debug   bool
	center  bool
	noWatch bool
	maxZoom float64
}

func newRootCmd(version string) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "scrollmap [file]",
		Short:        "A zoomable terminal viewer with a minimap",
		Long:         `Scrollmap shows an image or text file in a zoomable, scrollable view with a minimap overlay. Drag the highlight on the minimap to scroll.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "draw with ASCII characters only")
	cmd.Flags().BoolVar(&f.noKitty, "no-kitty", false, "never draw the minimap with Kitty graphics")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "write a debug log (path from SCROLLMAP_LOG, default debug.log)")
	cmd.Flags().BoolVar(&f.center, "center", false, "center the content inside the minimap")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "do not reload the file when it changes on disk")
	cmd.Flags().Float64Var(&f.maxZoom, "max-zoom", 0, "maximum zoom relative to fit")

	return cmd
}

// applyFlags folds command line overrides into the loaded config and
// returns the messages of any values that had to be reset.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) []string {
	if f.ascii {
		t := true
		cfg.View.AsciiMode = &t
	}
	if f.noKitty {
		off := false
		cfg.Minimap.Kitty = &off
	}
	if f.center {
		cfg.Minimap.CentersContent = true
	}
	if cmd.Flags().Changed("max-zoom") {
		cfg.View.MaxZoom = f.maxZoom
	}
	return cfg.Normalize()
}

// renderMode picks how the view and minimap are drawn for a terminal.
func renderMode(caps *config.TermCapabilities, ascii bool) ui.RenderMode {
	switch {
	case ascii:
		return ui.ModeASCII
	case caps.ColorMode == config.Color16:
		return ui.ModeBraille
	default:
		return ui.ModeHalfBlock
	}
}

// keyConflicts describes every key bound to more than one action.
func keyConflicts(kb *config.KeybindingsConfig) []string {
	conflicts := kb.FindConflicts()
	var msgs []string
	for _, k := range slices.Sorted(maps.Keys(conflicts)) {
		msgs = append(msgs, fmt.Sprintf("key %s bound to %s", k, strings.Join(conflicts[k], ", ")))
	}
	return msgs
}

func run(cmd *cobra.Command, args []string, f flags) error {
	if f.debug || log.Enabled() {
		closeLog, err := log.Init(log.Path())
		if err != nil {
			return err
		}
		defer closeLog()
	}

	caps := config.DetectCapabilities()

	cfg, cfgErr := config.Load()
	var messages []string
	if cfgErr != nil {
		log.ErrorErr(log.CatConfig, "loading config", cfgErr)
		messages = append(messages, cfgErr.Error())
	}
	messages = append(messages, applyFlags(cmd, cfg, f)...)

	ascii := caps.ShouldUseASCII(cfg.View.AsciiMode)
	ui.UseTrueColor = caps.ShouldUseTrueColor(cfg.View.TrueColor)
	mode := renderMode(caps, ascii)
	kitty := caps.ShouldUseKitty(cfg.Minimap.Kitty, ascii)
	log.Info(log.CatConfig, "terminal", "colors", caps.ColorMode.String(), "mode", mode.String(), "kitty", kitty)

	keys := config.LoadKeybindings()
	messages = append(messages, keyConflicts(keys)...)

	opts := viewer.Options{
		Config: cfg,
		Keys:   keys,
		Mode:   mode,
		Kitty:  kitty,
		Watch:  !f.noWatch,
	}
	if len(messages) > 0 {
		opts.Message = strings.Join(messages, "; ")
		opts.MessageType = ui.MessageError
	}

	zone.NewGlobal()
	m := viewer.New(opts)

	if len(args) == 1 {
		if err := m.Open(args[0]); err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		cfg.AddRecentFile(args[0])
		if err := cfg.Save(); err != nil {
			log.ErrorErr(log.CatConfig, "saving recent files", err)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	// Kitty images survive the alternate screen on some terminals.
	fmt.Fprint(os.Stdout, m.Close())

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Package viewer is the terminal program around a ScrollView and its
// minimap: layout, keys, mouse gestures and file reloads.
package viewer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/cornish/scrollmap/clipboard"
	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
	"github.com/cornish/scrollmap/thumbnail"
	"github.com/cornish/scrollmap/ui"
	"github.com/cornish/scrollmap/watcher"
)

// kittyImageID is the Kitty graphics id the minimap always reuses.
const kittyImageID = 4217

// Options configure a Model.
type Options struct {
	Config      *config.Config
	Keys        *config.KeybindingsConfig
	Theme       config.Theme
	Mode        ui.RenderMode
	Kitty       bool
	Clipboard   *clipboard.Clipboard
	Watch       bool
	Message     string // shown in the status bar on start
	MessageType ui.MessageType
}

// fileChangedMsg is sent when the watched file settles after a change.
type fileChangedMsg struct{}

// dragState tracks a minimap gesture in screen cells.
type dragState struct {
	active     bool
	startX     int
	startY     int
	lastOffset minimap.Point
}

// Model is the main Bubbletea model for the viewer
type Model struct {
	cfg    *config.Config
	keys   KeyMap
	help   help.Model
	styles ui.Styles

	view   *ui.ScrollView
	mm     *minimap.Minimap
	mv     *ui.MinimapView
	cache  *thumbnail.Cache
	source thumbnail.Source
	opts   thumbnail.Options

	vbar   *ui.Scrollbar
	hbar   *ui.Scrollbar
	status *ui.StatusBar
	clip   *clipboard.Clipboard

	watch   bool
	watcher *watcher.Watcher
	changes <-chan struct{}

	zoneID   string // bubblezone id of the minimap
	path     string
	width    int
	height   int
	layout   layout
	showHelp bool
	drag     dragState

	pendingClear string // Kitty delete sequence for the next render
}

// New creates a viewer with no content.
func New(o Options) *Model {
	cfg := o.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	theme := o.Theme
	if theme.Name == "" {
		theme = cfg.Theme.GetResolved()
	}
	styles := ui.NewStyles(theme)

	clip := o.Clipboard
	if clip == nil {
		clip = clipboard.New(os.Stdout)
	}

	view := ui.NewScrollView(cfg.View.MinZoom, cfg.View.MaxZoom)
	view.SetMode(o.Mode)
	view.SetBackground(theme.UI.CanvasBg)

	mm := minimap.New(cfg.Minimap.Flags())
	mm.SetHost(view)
	view.OnChange(mm.Update)

	m := &Model{
		cfg:    cfg,
		keys:   NewKeyMap(o.Keys),
		help:   help.New(),
		styles: styles,
		view:   view,
		mm:     mm,
		mv:     ui.NewMinimapView(mm, styles),
		cache:  thumbnail.NewCache(nil, thumbnail.DefaultExpiration, thumbnail.DefaultCleanupInterval),
		vbar:   ui.NewScrollbar(ui.Vertical, styles),
		hbar:   ui.NewScrollbar(ui.Horizontal, styles),
		status: ui.NewStatusBar(styles),
		clip:   clip,
		watch:  o.Watch,
		zoneID: zone.NewPrefix() + "minimap",
		width:  80,
		height: 24,
	}

	m.opts = thumbnail.DefaultOptions()
	m.opts.Style = theme.TextStyle

	m.help.Styles.ShortKey = styles.HelpKey
	m.help.Styles.ShortDesc = styles.HelpDesc
	m.help.Styles.FullKey = styles.HelpKey
	m.help.Styles.FullDesc = styles.HelpDesc

	m.mv.SetMode(o.Mode)
	m.mv.SetEnabled(cfg.Minimap.Enabled)
	m.mv.SetSource(m.cache)
	m.mv.SetHighlightStyle(ui.HighlightStyleFrom(
		cfg.Minimap.HighlightAlpha,
		cfg.Minimap.HighlightColor,
		cfg.Minimap.HighlightBorderColor,
		cfg.Minimap.HighlightBorderWidth,
	))
	if o.Kitty {
		m.mv.SetKitty(ui.NewKittyEncoder(kittyImageID))
	}

	m.vbar.SetEnabled(cfg.View.Scrollbars)
	m.hbar.SetEnabled(cfg.View.Scrollbars)

	if o.Message != "" {
		m.status.SetMessage(o.Message, o.MessageType)
	}

	m.relayout()
	return m
}

// Open loads path as the content. When watching is enabled the file is
// reloaded whenever it changes on disk.
func (m *Model) Open(path string) error {
	src, err := thumbnail.Load(path, m.opts)
	if err != nil {
		return err
	}
	m.path = path
	m.setSource(src, false)
	log.Info(log.CatUI, "opened", "path", path, "kind", src.Kind().String())

	if m.watch && m.watcher == nil {
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err != nil {
			return err
		}
		changes, err := w.Start()
		if err != nil {
			_ = w.Stop()
			return err
		}
		m.watcher, m.changes = w, changes
	}
	return nil
}

// SetSource shows an already loaded source.
func (m *Model) SetSource(name string, src thumbnail.Source) {
	m.path = name
	m.setSource(src, false)
}

func (m *Model) setSource(src thumbnail.Source, keepView bool) {
	m.source = src
	m.cache.SetSource(src)
	if keepView {
		m.view.ReplaceContent(src.Image())
	} else {
		m.view.SetContent(src.Image())
	}

	m.status.SetFilename(m.path)
	m.status.SetEncoding("")
	if t, ok := src.(*thumbnail.TextSource); ok {
		m.status.SetEncoding(t.Encoding())
	}
}

// reload re-reads the file after a change on disk, keeping zoom and scroll.
func (m *Model) reload() {
	src, err := thumbnail.Load(m.path, m.opts)
	if err != nil {
		log.ErrorErr(log.CatWatch, "reload failed", err, "path", m.path)
		m.status.SetMessage("Reload failed: "+err.Error(), ui.MessageError)
		return
	}
	m.setSource(src, true)
	m.status.SetMessage("Reloaded "+filepath.Base(m.path), ui.MessageInfo)
}

// Close stops the file watcher and returns the sequence that removes a
// Kitty minimap image from the terminal.
func (m *Model) Close() string {
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			log.ErrorErr(log.CatWatch, "stopping watcher", err)
		}
		m.watcher = nil
	}
	return m.mv.ClearOverlay()
}

// ScrollView returns the host surface.
func (m *Model) ScrollView() *ui.ScrollView {
	return m.view
}

// Minimap returns the bound minimap.
func (m *Model) Minimap() *minimap.Minimap {
	return m.mm
}

// MinimapView returns the minimap renderer.
func (m *Model) MinimapView() *ui.MinimapView {
	return m.mv
}

// StatusMessage returns the status bar message.
func (m *Model) StatusMessage() string {
	return m.status.Message()
}

// Init implements tea.Model. The program is expected to run with the
// alternate screen and cell motion mouse reporting.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher and reports one change.
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case fileChangedMsg:
		m.reload()
		return m, m.waitForChange()
	}

	return m, nil
}

// scrollStep returns the arrow-key step in view pixels.
func (m *Model) scrollStep() minimap.Point {
	step := float64(m.cfg.View.ScrollStep)
	return minimap.Point{X: step, Y: step * 2}
}

// copyRect puts the visible content rectangle on the clipboard.
func (m *Model) copyRect() {
	text, err := m.clip.CopyRect(m.view.VisibleRect())
	if err != nil {
		m.status.SetMessage("Copy failed: "+err.Error(), ui.MessageError)
		return
	}
	m.status.SetMessage(fmt.Sprintf("Copied %s (%s)", text, m.clip.Method()), ui.MessageInfo)
}

// setFlags applies changed minimap flags and remembers them in the config.
func (m *Model) setFlags(centers, fullExtent bool) {
	m.cfg.Minimap.CentersContent = centers
	m.cfg.Minimap.ShowsHighlightAtFullExtent = fullExtent
	m.mm.SetConfig(m.cfg.Minimap.Flags())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// zoomPercent formats a relative zoom for messages.
func zoomPercent(rel float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(rel*100))
}

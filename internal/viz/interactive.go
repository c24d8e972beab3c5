package viz

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/digitlive/internal/app"
	"github.com/san-kum/digitlive/internal/capture"
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/config"
	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/storage"
	"github.com/san-kum/digitlive/internal/surface"
)

const (
	drawCols    = 28
	drawRows    = 14
	diagramCols = 44
	diagramRows = 14

	// The drawing box starts below the title and a blank line, inside its border.
	boxLeft = 1
	boxTop  = 3
)

// callMsg carries a callback onto the program's update loop.
type callMsg func()

// Model is the interactive drawing client.
type Model struct {
	ctx      context.Context
	client   *app.Client
	preview  *Canvas
	diagram  *Canvas
	layout   netdiagram.Layout
	palette  netdiagram.Palette
	theme    Theme
	st       styles
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(ctx context.Context, client *app.Client, theme Theme) Model {
	pal := netdiagram.DefaultPalette()
	return Model{
		ctx:     ctx,
		client:  client,
		preview: NewCanvas(drawCols, drawRows),
		diagram: NewCanvas(diagramCols, diagramRows),
		layout:  netdiagram.DefaultLayout(client.Diagram().Topology()),
		palette: pal,
		theme:   theme,
		st:      newStyles(theme, pal),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return callMsg(func() { m.client.Start(m.ctx) })
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callMsg:
		msg()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.client.Stop()
		return m, tea.Quit
	case "c":
		m.client.Clear()
		m.status = ""
	case "r":
		m.client.Reload()
		m.status = "reloaded"
	case "v":
		m.client.ToggleView()
	case "s":
		id, err := m.client.SaveSnapshot()
		if err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + id[:8]
		}
	case "t":
		m.theme = NextTheme(m.theme)
		m.st = newStyles(m.theme, m.palette)
		m.status = "theme " + m.theme.Name
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	p, inside := m.toSurface(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.client.PointerDown(p, capture.Primary)
		case tea.MouseButtonRight:
			m.client.PointerDown(p, capture.Secondary)
		}
	case tea.MouseActionMotion:
		if !inside {
			m.client.PointerOut()
			return
		}
		m.client.PointerMove(p)
	case tea.MouseActionRelease:
		m.client.PointerUp()
	}
}

// toSurface maps a terminal cell to the centre of the surface pixels it covers.
func (m Model) toSurface(x, y int) (surface.Point, bool) {
	cx, cy := x-boxLeft, y-boxTop
	if cx < 0 || cy < 0 || cx >= drawCols || cy >= drawRows {
		return surface.Point{}, false
	}
	surf := m.client.Surface()
	cw := float64(surf.Width()) / drawCols
	ch := float64(surf.Height()) / drawRows
	return surface.Point{X: (float64(cx) + 0.5) * cw, Y: (float64(cy) + 0.5) * ch}, true
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger, store *storage.Store) error {
	var prog *tea.Program
	post := func(f func()) { prog.Send(callMsg(f)) }

	client, err := app.New(app.Options{
		Config: cfg,
		Clock:  clock.NewReal(post),
		Post:   post,
		Logger: logger,
		Store:  store,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	prog = tea.NewProgram(
		NewModel(ctx, client, GetTheme(cfg.Theme)),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = prog.Run()
	return err
}

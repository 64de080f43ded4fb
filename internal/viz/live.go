package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/wlldxn/orbitlab/internal/config"
	"github.com/wlldxn/orbitlab/internal/metrics"
	"github.com/wlldxn/orbitlab/internal/orbit"
	"github.com/wlldxn/orbitlab/internal/vecmath"
)

const (
	canvasWidth     = 80
	canvasHeight    = 28
	historyCapacity = 400
)

type TickMsg time.Time

// Model is the live terminal view. It owns the simulation loop and reads
// body snapshots between ticks; all mutation goes through the System's
// public entry points.
type Model struct {
	sys    *orbit.System
	cfg    *config.Config
	canvas *Canvas
	rng    *rand.Rand

	running    bool
	showOrbits bool
	tick       int
	fps        int

	energyHistory []float64
	maxEcc        float64
}

func NewModel(sys *orbit.System, cfg *config.Config, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sys:           sys,
		cfg:           cfg,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		rng:           rand.New(rand.NewSource(cfg.Seed + 1)),
		running:       true,
		showOrbits:    true,
		fps:           fps,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the live view and blocks until the user quits.
func Run(sys *orbit.System, cfg *config.Config, fps int) error {
	p := tea.NewProgram(NewModel(sys, cfg, fps))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.frame()
}

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "o":
			m.showOrbits = !m.showOrbits
		case "a":
			m.spawnSatellite()
		case "c":
			m.sys.RemoveAllExceptPrimary()
		case "r":
			if sys, err := m.cfg.Build(); err == nil {
				m.sys = sys
				m.tick = 0
				m.energyHistory = m.energyHistory[:0]
			}
		}

	case TickMsg:
		if m.running {
			m.sys.Tick()
			m.tick++
			m.observe()
		}
		return m, m.frame()
	}

	return m, nil
}

// spawnSatellite attaches a random body to the heaviest primary.
func (m *Model) spawnSatellite() {
	var primary orbit.BodyView
	found := false
	for _, b := range m.sys.Bodies() {
		if b.Ref == orbit.None && (!found || b.Mass > primary.Mass) {
			primary = b
			found = true
		}
	}
	if !found {
		return
	}

	dist := 40 + m.rng.Float64()*m.cfg.HalfExtent/2
	angle := m.rng.Float64() * 2 * math.Pi
	pos := primary.Pos.Add(vecmath.Vec2{X: dist}.Rotate(angle))
	eccMod := 0.8 + m.rng.Float64()*0.4
	mass := 1 + m.rng.Float64()*10

	colors := []string{"#88ccff", "#ff8866", "#aaffaa", "#ffaaff", "#ffff88"}
	color := colors[m.rng.Intn(len(colors))]

	m.sys.AddSatellite(primary.ID, mass, 3, color, pos, eccMod)
}

func (m *Model) observe() {
	bodies := m.sys.Bodies()

	if len(m.energyHistory) >= historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.energyHistory = append(m.energyHistory, metrics.SystemEnergy(bodies, m.sys.G()))

	m.maxEcc = 0
	for _, b := range bodies {
		if b.Ref != orbit.None && !math.IsInf(b.Ecc, 0) && !math.IsNaN(b.Ecc) {
			m.maxEcc = math.Max(m.maxEcc, b.Ecc)
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBITLAB") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Total energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.tick)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Len())) + "\n")

	eccText := fmt.Sprintf("%.3f", m.maxEcc)
	if m.maxEcc >= 1 {
		s.WriteString(labelStyle.Render("Max ecc") + warnStyle.Render(eccText+" (escaping)") + "\n")
	} else {
		s.WriteString(labelStyle.Render("Max ecc") + valueStyle.Render(eccText) + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause A:Add O:Orbits\nC:Clear R:Reset Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// draw projects the world square [-half, half]^2 onto the canvas with a
// uniform scale so ellipses keep their shape.
func (m Model) draw() {
	m.canvas.Clear()

	half := m.cfg.HalfExtent
	subW := float64(m.canvas.Width * 2)
	subH := float64(m.canvas.Height * 4)
	scale := math.Min(subW, subH) / (2 * half)

	toScreen := func(x, y float64) (float64, float64) {
		return subW/2 + x*scale, subH/2 + y*scale
	}

	bodies := m.sys.Bodies()

	if m.showOrbits {
		for _, b := range bodies {
			if b.Ref == orbit.None || b.Ecc >= 1 {
				continue
			}
			ref, ok := m.sys.Body(b.Ref)
			if !ok {
				continue
			}
			// The reference body sits at a focus; the ellipse
			// center is offset a*e along the periapsis direction,
			// away from it.
			center := ref.Pos.Sub(b.EccVec.WithMag(b.SemiMajor * b.Ecc))
			cx, cy := toScreen(center.X, center.Y)
			m.canvas.StrokeEllipse(cx, cy, b.SemiMajor*scale, b.SemiMinor*scale, b.EccVec.Heading())
		}
	}

	for _, b := range bodies {
		sx, sy := toScreen(b.Pos.X, b.Pos.Y)
		r := int(math.Max(1, b.Size*scale))
		m.canvas.FillCircle(int(math.Round(sx)), int(math.Round(sy)), r)
	}
}

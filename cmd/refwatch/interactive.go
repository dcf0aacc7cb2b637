package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/refkit/registry"
	"github.com/wippyai/refkit/shared"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	expiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type handleKind int

const (
	kindStrong handleKind = iota
	kindWeak
)

// handleEntry is one handle the user holds through the TUI.
type handleEntry struct {
	name   string
	kind   handleKind
	strong shared.Ptr[demoResource]
	weak   shared.Weak[demoResource]
}

type modelState int

const (
	stateList modelState = iota
	stateName
)

type interactiveModel struct {
	tracker  *registry.Tracker
	handles  []handleEntry
	events   []string
	input    textinput.Model
	selected int
	state    modelState
	nextName int
}

func newInteractiveModel(tracker *registry.Tracker) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "resource name"
	ti.Prompt = "name: "
	ti.Width = 40

	return &interactiveModel{
		tracker: tracker,
		input:   ti,
		state:   stateList,
	}
}

// OnBlockEvent implements registry.Observer. Handle operations happen
// inside Update, so events arrive synchronously on the TUI goroutine.
func (m *interactiveModel) OnBlockEvent(e registry.Event) {
	var line string
	switch e.Type {
	case registry.EventAllocated:
		storage := "pointer"
		if e.Inline {
			storage = "inline"
		}
		line = fmt.Sprintf("block %d allocated (%s)", e.ID, storage)
	case registry.EventCounts:
		line = fmt.Sprintf("block %d counts: strong=%d weak=%d", e.ID, e.Strong, e.Weak)
	case registry.EventObjectReleased:
		line = fmt.Sprintf("block %d object released", e.ID)
	case registry.EventFreed:
		line = fmt.Sprintf("block %d freed", e.ID)
	}
	m.events = append(m.events, line)
	if len(m.events) > 64 {
		m.events = m.events[len(m.events)-64:]
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateName {
			switch msg.String() {
			case "enter":
				name := strings.TrimSpace(m.input.Value())
				if name == "" {
					name = fmt.Sprintf("res-%d", m.nextName)
					m.nextName++
				}
				p := shared.Make(demoResource{name: name})
				m.handles = append(m.handles, handleEntry{name: name, kind: kindStrong, strong: p})
				m.selected = len(m.handles) - 1
				m.input.Reset()
				m.input.Blur()
				m.state = stateList
				return m, nil
			case "esc":
				m.input.Reset()
				m.input.Blur()
				m.state = stateList
				return m, nil
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.releaseAll()
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.handles)-1 {
				m.selected++
			}

		case "n":
			m.state = stateName
			m.input.Focus()

		case "c":
			if e := m.current(); e != nil {
				clone := *e
				if e.kind == kindStrong {
					clone.strong = e.strong.Clone()
				} else {
					clone.weak = e.weak.Clone()
				}
				m.handles = append(m.handles, clone)
			}

		case "w":
			if e := m.current(); e != nil && e.kind == kindStrong {
				m.handles = append(m.handles, handleEntry{
					name: e.name,
					kind: kindWeak,
					weak: shared.NewWeak(e.strong),
				})
			}

		case "l":
			if e := m.current(); e != nil && e.kind == kindWeak {
				if s := e.weak.Lock(); s.Valid() {
					m.handles = append(m.handles, handleEntry{name: e.name, kind: kindStrong, strong: s})
				} else {
					m.events = append(m.events, fmt.Sprintf("lock %s: expired", e.name))
				}
			}

		case "r":
			if len(m.handles) > 0 {
				e := &m.handles[m.selected]
				if e.kind == kindStrong {
					e.strong.Release()
				} else {
					e.weak.Release()
				}
				m.handles = append(m.handles[:m.selected], m.handles[m.selected+1:]...)
				if m.selected >= len(m.handles) && m.selected > 0 {
					m.selected--
				}
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) current() *handleEntry {
	if len(m.handles) == 0 {
		return nil
	}
	return &m.handles[m.selected]
}

func (m *interactiveModel) releaseAll() {
	for i := range m.handles {
		if m.handles[i].kind == kindStrong {
			m.handles[i].strong.Release()
		} else {
			m.handles[i].weak.Release()
		}
	}
	m.handles = nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("refwatch"))
	b.WriteString(fmt.Sprintf("  %d handles, %d live blocks\n\n", len(m.handles), m.tracker.Len()))

	if m.state == stateName {
		b.WriteString("New resource:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter create • esc cancel"))
		return b.String()
	}

	b.WriteString("Handles:\n")
	if len(m.handles) == 0 {
		b.WriteString(helpStyle.Render("  none - press n to create a resource"))
		b.WriteString("\n")
	}
	for i, e := range m.handles {
		cursor := "  "
		line := m.formatHandle(e)
		if i == m.selected {
			cursor = "> "
			b.WriteString(selectedStyle.Render(cursor + line))
		} else {
			b.WriteString(cursor + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nBlocks:\n")
	blocks := m.tracker.Snapshot()
	if len(blocks) == 0 {
		b.WriteString(helpStyle.Render("  none"))
		b.WriteString("\n")
	}
	for _, blk := range blocks {
		storage := "pointer"
		if blk.Inline {
			storage = "inline"
		}
		state := eventStyle.Render("live")
		if !blk.ObjectLive {
			state = expiredStyle.Render("released")
		}
		b.WriteString(fmt.Sprintf("  block %-3d strong=%-2d weak=%-2d %-7s %s\n",
			blk.ID, blk.Strong, blk.Weak, storage, state))
	}

	b.WriteString("\nEvents:\n")
	start := 0
	if len(m.events) > 8 {
		start = len(m.events) - 8
	}
	for _, ev := range m.events[start:] {
		b.WriteString("  ")
		b.WriteString(eventStyle.Render(ev))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • n new • c clone • w weak • l lock • r release • q quit"))
	return b.String()
}

func (m *interactiveModel) formatHandle(e handleEntry) string {
	switch e.kind {
	case kindWeak:
		status := fmt.Sprintf("use=%d", e.weak.UseCount())
		if e.weak.Expired() {
			status = expiredStyle.Render("expired")
		}
		return nameStyle.Render(e.name) + " " + kindStyle.Render("weak") + " " + status
	default:
		return nameStyle.Render(e.name) + " " + kindStyle.Render("strong") + " " +
			fmt.Sprintf("use=%d", e.strong.UseCount())
	}
}

func runInteractive(tracker *registry.Tracker) error {
	m := newInteractiveModel(tracker)
	tracker.Subscribe(m)
	defer tracker.Unsubscribe(m)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

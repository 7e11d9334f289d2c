package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/resns"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sharedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateInputValue
)

// eventLog collects namespace events from all observed namespaces.
type eventLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *eventLog) record(ns int, e resns.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("ns%d %s", ns, e.Type)
	if e.Resource != nil {
		line = fmt.Sprintf("ns%d %s %s (strong=%d)", ns, e.Type, e.Resource.Name(), e.Strong)
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > 8 {
		l.lines = l.lines[len(l.lines)-8:]
	}
}

func (l *eventLog) tail() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// nsObserver forwards one namespace's events into the shared log.
type nsObserver struct {
	log *eventLog
	idx int
}

func (o *nsObserver) OnNamespaceEvent(e resns.Event) {
	o.log.record(o.idx, e)
}

type interactiveModel struct {
	resources []demoResource
	spaces    []*resns.Namespace
	log       *eventLog
	input     textinput.Model
	errMsg    string
	row       int // selected resource
	col       int // selected namespace
	source    int // namespace shares are pulled from
	state     modelState
}

func newInteractiveModel() *interactiveModel {
	m := &interactiveModel{
		resources: demoResources(),
		log:       &eventLog{},
		source:    0,
	}
	m.addNamespace()
	m.addNamespace()
	return m
}

func (m *interactiveModel) addNamespace() {
	ns := resns.New()
	ns.Subscribe(&nsObserver{log: m.log, idx: len(m.spaces)})
	m.spaces = append(m.spaces, ns)
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateInputValue {
		switch keyMsg.String() {
		case "enter":
			m.errMsg = ""
			if err := m.resources[m.row].Set(m.spaces[m.col], m.input.Value()); err != nil {
				m.errMsg = err.Error()
			}
			m.state = stateBrowse
			return m, nil
		case "esc":
			m.state = stateBrowse
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		for _, ns := range m.spaces {
			ns.Close()
		}
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}

	case "down", "j":
		if m.row < len(m.resources)-1 {
			m.row++
		}

	case "left", "h":
		if m.col > 0 {
			m.col--
		}

	case "right", "l":
		if m.col < len(m.spaces)-1 {
			m.col++
		}

	case "n":
		m.addNamespace()
		m.col = len(m.spaces) - 1

	case "x":
		m.source = m.col

	case "s":
		m.errMsg = ""
		if m.source == m.col {
			m.errMsg = "source and target are the same namespace"
			break
		}
		m.resources[m.row].Share(m.spaces[m.col], m.spaces[m.source])

	case "r":
		m.errMsg = ""
		m.resources[m.row].Reset(m.spaces[m.col])

	case "m":
		m.errMsg = ""
		m.input = textinput.New()
		m.input.Prompt = m.resources[m.row].Name() + " = "
		m.input.Placeholder = m.resources[m.row].Render(m.spaces[m.col])
		m.input.Width = 40
		m.input.Focus()
		m.state = stateInputValue
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Namespace Inspector"))
	b.WriteString(fmt.Sprintf("  %d resources x %d namespaces\n\n", len(m.resources), len(m.spaces)))

	// Header row: namespace columns.
	b.WriteString(fmt.Sprintf("%-16s", ""))
	for i := range m.spaces {
		label := fmt.Sprintf("ns%d", i)
		if i == m.source {
			label = sourceStyle.Render(label + "*")
		} else {
			label = headerStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%-22s", label))
	}
	b.WriteString("\n")

	for ri, res := range m.resources {
		b.WriteString(fmt.Sprintf("%-16s", res.Name()))
		for ci, ns := range m.spaces {
			cell := fmt.Sprintf("%s (s=%d)", res.Render(ns), res.Strong(ns))
			if !res.Mutable(ns) {
				cell = sharedStyle.Render(cell + " shared")
			}
			if ri == m.row && ci == m.col {
				cell = selectedStyle.Render("[" + cell + "]")
			}
			b.WriteString(fmt.Sprintf("%-22s", cell))
		}
		b.WriteString("\n")
	}

	if m.state == stateInputValue {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply - esc cancel"))
		return b.String()
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	if tail := m.log.tail(); len(tail) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Events"))
		b.WriteString("\n")
		for _, line := range tail {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows move - n new ns - x mark source - s share from source - r reset - m mutate - q quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

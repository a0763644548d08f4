// Package ui provides the terminal chat interface using Bubble Tea.
//
// The agent loop is synchronous and blocking, so the host runs each query on
// a background goroutine and funnels the loop's observer callbacks through a
// channel back into the Bubble Tea event loop. The UI never calls the agent
// directly; it only submits queries and drains events.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// EventKind classifies an agent event.
type EventKind int

const (
	// EventProgress is an intermediate model reply or observation.
	EventProgress EventKind = iota
	// EventAnswer is the final result of a run.
	EventAnswer
	// EventError means the run aborted.
	EventError
)

// Event is one agent progress update delivered to the UI.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Submit starts a run for a query on a background goroutine. Events for the
// run must arrive on the channel given to NewModel, terminated by an
// EventAnswer or EventError.
type Submit func(query string)

// Model is the Bubble Tea model for the stormy chat UI.
type Model struct {
	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	styles    Styles

	running  bool
	messages []chatMessage
	width    int
	height   int
	ready    bool
	quitting bool

	submit Submit
	events <-chan Event
}

// chatMessage represents a message in the chat history.
type chatMessage struct {
	role    string // "user", "assistant", "trace", "system", "error"
	content string
}

// NewModel creates a new UI model.
func NewModel(submit Submit, events <-chan Event) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the weather... (e.g., 'What's the weather in London?')"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = DefaultStyles().Spinner

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.DefaultKeyMap()

	return Model{
		textInput: ti,
		spinner:   s,
		viewport:  vp,
		styles:    DefaultStyles(),
		messages:  make([]chatMessage, 0),
		submit:    submit,
		events:    events,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// waitForEvent blocks on the agent event channel as a Bubble Tea command.
func (m Model) waitForEvent() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		return <-ch
	}
}

// headerHeight returns the number of terminal lines occupied by the banner.
func (m Model) headerHeight() int {
	banner := m.styles.BannerTitle.Render(Banner())
	return strings.Count(banner, "\n") + 3
}

// footerHeight returns the number of terminal lines occupied by the input
// and help bar.
func (m Model) footerHeight() int {
	return 4
}

// updateViewport rebuilds the viewport content and scrolls to the bottom.
func (m *Model) updateViewport() {
	var b strings.Builder

	for _, msg := range m.messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.running {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.StatusText.Render(" thinking..."))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.running {
				return m, nil
			}

			query := strings.TrimSpace(m.textInput.Value())
			if query == "" {
				return m, nil
			}

			if cmd, handled := m.handleCommand(query); handled {
				m.textInput.SetValue("")
				m.updateViewport()
				return m, cmd
			}

			m.messages = append(m.messages, chatMessage{role: "user", content: query})
			m.textInput.SetValue("")
			m.running = true
			m.updateViewport()

			m.submit(query)
			return m, tea.Batch(m.waitForEvent(), m.spinner.Tick)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10

		vpWidth := msg.Width
		vpHeight := msg.Height - m.headerHeight() - m.footerHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.viewport.KeyMap = viewport.DefaultKeyMap()
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}

		m.ready = true
		m.updateViewport()

	case Event:
		switch msg.Kind {
		case EventProgress:
			m.messages = append(m.messages, chatMessage{role: "trace", content: msg.Text})
			m.updateViewport()
			// Keep draining until the run terminates.
			return m, m.waitForEvent()

		case EventAnswer:
			m.messages = append(m.messages, chatMessage{
				role:    "assistant",
				content: FinalAnswer(msg.Text),
			})
			m.running = false
			m.updateViewport()
			return m, nil

		case EventError:
			m.messages = append(m.messages, chatMessage{
				role:    "error",
				content: "Error: " + msg.Err.Error(),
			})
			m.running = false
			m.updateViewport()
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.running {
			m.updateViewport()
		}
	}

	if !m.running {
		var tiCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

// handleCommand processes special commands, reporting whether the input was
// one.
func (m *Model) handleCommand(input string) (tea.Cmd, bool) {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		m.quitting = true
		return tea.Quit, true

	case "clear":
		m.messages = make([]chatMessage, 0)
		return nil, true

	case "help", "?":
		m.messages = append(m.messages, chatMessage{
			role: "system",
			content: `Available commands:
  help, ?     Show this help
  clear       Clear chat history
  exit, quit  Exit stormy

Example queries:
  "What's the weather in London?"
  "Will it rain in Tokyo this week?"
  "How much warmer is Madrid than Oslo right now?"`,
		})
		return nil, true
	}

	return nil, false
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return m.styles.SystemMessage.Render("Goodbye!\n")
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.styles.BannerTitle.Render(Banner()))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.styles.Prompt.Render("> "))
	if m.running {
		b.WriteString(m.styles.StatusText.Render("(thinking...)"))
	} else {
		b.WriteString(m.textInput.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpBar.Render("enter: send • ctrl+c/esc: quit • help: commands"))

	return m.styles.App.Render(b.String())
}

// renderMessage renders a single chat message.
func (m Model) renderMessage(msg chatMessage) string {
	switch msg.role {
	case "user":
		return m.styles.UserMessage.Render("You: " + msg.content)
	case "assistant":
		return m.styles.AssistantMessage.Render("Stormy: " + msg.content)
	case "trace":
		return m.styles.TraceMessage.Render(msg.content)
	case "system":
		return m.styles.SystemMessage.Render(msg.content)
	case "error":
		return m.styles.ErrorMessage.Render(msg.content)
	}
	return ""
}

// FinalAnswer extracts the text after the last Answer: marker from a run
// transcript. Transcripts without the marker (a budget-exhausted run) are
// returned whole.
func FinalAnswer(transcript string) string {
	idx := strings.LastIndex(transcript, "Answer:")
	if idx < 0 {
		return transcript
	}
	return strings.TrimSpace(transcript[idx+len("Answer:"):])
}

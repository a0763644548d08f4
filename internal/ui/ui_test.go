package ui

import (
	"strings"
	"testing"
)

func TestFinalAnswer(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       string
	}{
		{
			name:       "single answer",
			transcript: "Thought: done.\nAnswer: It is 18.5 degrees in London.",
			want:       "It is 18.5 degrees in London.",
		},
		{
			name:       "last answer wins",
			transcript: "Answer: draft\nThought: revising.\nAnswer: final",
			want:       "final",
		},
		{
			name:       "no marker returns transcript whole",
			transcript: "Thought: still working.\nExceeded maximum iterations without reaching an answer.",
			want:       "Thought: still working.\nExceeded maximum iterations without reaching an answer.",
		},
		{
			name:       "surrounding whitespace trimmed",
			transcript: "Answer:   sunny and mild  \n",
			want:       "sunny and mild",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalAnswer(tt.transcript); got != tt.want {
				t.Errorf("FinalAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleCommand(t *testing.T) {
	newModel := func() Model {
		return NewModel(func(string) {}, make(chan Event))
	}

	t.Run("clear empties history", func(t *testing.T) {
		m := newModel()
		m.messages = append(m.messages, chatMessage{role: "user", content: "hi"})

		_, handled := m.handleCommand("clear")
		if !handled {
			t.Fatal("clear was not handled as a command")
		}
		if len(m.messages) != 0 {
			t.Errorf("messages = %d, want 0", len(m.messages))
		}
	})

	t.Run("help appends system message", func(t *testing.T) {
		m := newModel()

		_, handled := m.handleCommand("help")
		if !handled {
			t.Fatal("help was not handled as a command")
		}
		if len(m.messages) != 1 || m.messages[0].role != "system" {
			t.Fatalf("expected one system message, got %+v", m.messages)
		}
		if !strings.Contains(m.messages[0].content, "clear") {
			t.Error("help text does not mention clear")
		}
	})

	t.Run("quit variants set quitting", func(t *testing.T) {
		for _, input := range []string{"exit", "quit", "q", "EXIT"} {
			m := newModel()
			cmd, handled := m.handleCommand(input)
			if !handled {
				t.Errorf("%q was not handled as a command", input)
			}
			if cmd == nil {
				t.Errorf("%q returned no quit command", input)
			}
			if !m.quitting {
				t.Errorf("%q did not set quitting", input)
			}
		}
	})

	t.Run("plain query is not a command", func(t *testing.T) {
		m := newModel()
		if _, handled := m.handleCommand("What's the weather in London?"); handled {
			t.Error("query was swallowed as a command")
		}
	})
}

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ritwikdas/stormy/internal/agent"
	"github.com/ritwikdas/stormy/internal/ui"
)

// runInteractive hosts the Bubble Tea chat. One agent lives for the whole
// session so follow-up questions keep their conversation history. Each query
// runs on its own goroutine; queries are serialized by the UI, which refuses
// input while a run is in flight.
func runInteractive() {
	a, err := newAgent(cfg, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	events := make(chan ui.Event, 16)

	submit := func(query string) {
		go func() {
			result, err := a.RunLoop(context.Background(), query,
				agent.WithObserver(func(text string) {
					events <- ui.Event{Kind: ui.EventProgress, Text: text}
				}))
			if err != nil {
				events <- ui.Event{Kind: ui.EventError, Err: err}
				return
			}
			events <- ui.Event{Kind: ui.EventAnswer, Text: result}
		}()
	}

	p := tea.NewProgram(ui.NewModel(submit, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running chat: %v\n", err)
		os.Exit(1)
	}
}

// Package agent implements the ReACT loop: the agent thinks, acts through
// a tool, observes the result, and repeats until it answers or runs out of
// iterations.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ritwikdas/stormy/internal/llm"
	"github.com/ritwikdas/stormy/internal/tools"
	"go.uber.org/zap"
)

// Corrective observations steer the model back onto the protocol. They are
// injected verbatim as the next user turn; a protocol violation is another
// turn of conversation, never a failed run.
const (
	observationNoAction = "Observation: Could not parse action. Please use the format 'Action: tool_name: arguments'"
	observationNoPause  = "Observation: Expected 'Action: tool_name: arguments' followed by 'PAUSE'. Please follow the format."
	budgetNotice        = "Exceeded maximum iterations without reaching an answer."
)

// Markers the controller scans each reply for.
const (
	answerMarker = "Answer:"
	pauseMarker  = "PAUSE"
)

// Completer is the model invocation boundary consumed by the loop.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Observer receives every model reply and synthesized observation as it is
// produced, in generation order. It may run on the loop's goroutine and
// must not block it indefinitely.
type Observer func(text string)

// Agent owns one conversation and drives the ReACT loop over it. An Agent
// is not safe for concurrent RunLoop calls; callers serialize invocations
// or use one Agent per conversation.
type Agent struct {
	client        Completer
	registry      *tools.Registry
	maxIterations int
	debug         bool
	debugSink     io.Writer
	logger        *zap.Logger

	messages  []llm.Message
	prompt    string
	promptRev uint64
	promptOK  bool
}

// Config holds agent settings.
type Config struct {
	Client        Completer
	Registry      *tools.Registry
	MaxIterations int       // iteration ceiling per run, default 10
	Debug         bool      // echo replies and observations to DebugSink
	DebugSink     io.Writer // default os.Stdout
	Logger        *zap.Logger
}

// New creates an agent. The registry may be extended later through
// RegisterTool; the system prompt is rebuilt when the tool set changes.
func New(cfg Config) *Agent {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registry == nil {
		cfg.Registry = tools.NewRegistry()
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 10
	}
	if cfg.DebugSink == nil {
		cfg.DebugSink = os.Stdout
	}

	return &Agent{
		client:        cfg.Client,
		registry:      cfg.Registry,
		maxIterations: cfg.MaxIterations,
		debug:         cfg.Debug,
		debugSink:     cfg.DebugSink,
		logger:        cfg.Logger,
	}
}

// RegisterTool adds or replaces a tool. The cached system prompt is
// invalidated through the registry revision and rebuilt on next use.
func (a *Agent) RegisterTool(t tools.Tool) {
	a.registry.Register(t)
}

// Tools returns the agent's tool registry.
func (a *Agent) Tools() *tools.Registry {
	return a.registry
}

// SystemPrompt returns the rendered system instruction, rebuilding it if a
// tool was registered since the last render.
func (a *Agent) SystemPrompt() string {
	if rev := a.registry.Rev(); !a.promptOK || rev != a.promptRev {
		a.prompt = buildSystemPrompt(a.registry)
		a.promptRev = rev
		a.promptOK = true
	}
	return a.prompt
}

// Reset discards the conversation, reseeding it with the current system
// instruction as its sole turn.
func (a *Agent) Reset() {
	a.messages = []llm.Message{{Role: llm.RoleSystem, Content: a.SystemPrompt()}}
}

// Conversation returns a copy of the conversation turns.
func (a *Agent) Conversation() []llm.Message {
	out := make([]llm.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// runOptions collects per-run overrides.
type runOptions struct {
	observer      Observer
	maxIterations int
	reset         bool
}

// RunOption customizes a single RunLoop call.
type RunOption func(*runOptions)

// WithObserver forwards every reply and observation to fn.
func WithObserver(fn Observer) RunOption {
	return func(o *runOptions) { o.observer = fn }
}

// WithMaxIterations overrides the iteration ceiling for this run.
func WithMaxIterations(n int) RunOption {
	return func(o *runOptions) { o.maxIterations = n }
}

// WithReset discards the existing conversation before this run.
func WithReset() RunOption {
	return func(o *runOptions) { o.reset = true }
}

// RunLoop runs the ReACT loop for one query until the model answers or the
// iteration ceiling is reached. It returns the newline-joined model replies
// produced this run, with the budget notice appended when the ceiling
// terminated it. Conversation state persists across calls unless WithReset
// is given; model invocation failures abort the run and propagate.
func (a *Agent) RunLoop(ctx context.Context, query string, opts ...RunOption) (string, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	maxIterations := a.maxIterations
	if o.maxIterations > 0 {
		maxIterations = o.maxIterations
	}

	// Only reset when asked or when no conversation exists yet; a prior
	// run's turns keep context like a previously mentioned city. If the
	// tool set changed between runs, refresh the system turn in place.
	if o.reset || len(a.messages) == 0 {
		a.Reset()
	} else if prompt := a.SystemPrompt(); a.messages[0].Content != prompt {
		a.messages[0].Content = prompt
	}

	a.messages = append(a.messages, llm.Message{
		Role:    llm.RoleUser,
		Content: "Question: " + query,
	})

	var replies []string
	for iteration := 1; iteration <= maxIterations; iteration++ {
		reply, err := a.client.Complete(ctx, a.messages)
		if err != nil {
			return "", fmt.Errorf("agent loop aborted at iteration %d: %w", iteration, err)
		}

		a.messages = append(a.messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
		replies = append(replies, reply)
		a.emit(o.observer, reply)
		if a.debug {
			fmt.Fprintf(a.debugSink, "\n--- Iteration %d ---\n%s\n", iteration, reply)
		}

		if strings.Contains(reply, answerMarker) {
			a.logger.Info("answer reached", zap.Int("iterations", iteration))
			return strings.Join(replies, "\n"), nil
		}

		var observation string
		if strings.Contains(reply, pauseMarker) {
			observation = a.dispatch(reply)
		} else {
			observation = observationNoPause
		}

		a.messages = append(a.messages, llm.Message{Role: llm.RoleUser, Content: observation})
		a.emit(o.observer, observation)
		if a.debug {
			fmt.Fprintln(a.debugSink, observation)
		}
	}

	a.logger.Warn("iteration ceiling reached", zap.Int("max_iterations", maxIterations))
	return strings.Join(replies, "\n") + "\n" + budgetNotice, nil
}

// dispatch parses the Action line out of a PAUSE reply and runs the tool,
// producing the next Observation turn. Unknown tools and unparseable
// replies produce corrective observations instead of errors.
func (a *Agent) dispatch(reply string) string {
	act, ok := parseAction(reply)
	if !ok {
		a.logger.Warn("no action found in PAUSE reply")
		return observationNoAction
	}

	tool, exists := a.registry.Get(act.Tool)
	if !exists {
		a.logger.Warn("unknown tool requested", zap.String("tool", act.Tool))
		return fmt.Sprintf("Observation: Tool '%s' not found. Available tools: %s",
			act.Tool, strings.Join(a.registry.Keys(), ", "))
	}

	result := tools.SafeExecute(tool, act.Args, a.logger)
	return "Observation: " + renderResult(result)
}

// renderResult serializes a tool's result map as indented JSON for the
// Observation turn.
func renderResult(result map[string]any) string {
	rendered, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		// Maps of JSON-representable values cannot fail to marshal; this
		// covers a misbehaving tool returning channels or functions.
		return fmt.Sprintf(`{"error": "unrenderable tool result: %v"}`, err)
	}
	return string(rendered)
}

// emit forwards text to the observer when one is set.
func (a *Agent) emit(observer Observer, text string) {
	if observer != nil {
		observer(text)
	}
}

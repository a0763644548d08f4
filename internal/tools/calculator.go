package tools

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"go.uber.org/zap"
)

// calcEnv exposes only mathematical constants to expressions. Everything
// else (identifiers, function calls) fails compilation.
var calcEnv = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

// CalculatorTool performs arithmetic on the model's behalf.
type CalculatorTool struct {
	logger *zap.Logger
}

var _ Tool = (*CalculatorTool)(nil)

// NewCalculatorTool creates the calculate tool.
func NewCalculatorTool(logger *zap.Logger) *CalculatorTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorTool{logger: logger}
}

func (t *CalculatorTool) Name() string { return "calculate" }

func (t *CalculatorTool) Description() string {
	return "Performs mathematical calculations. Usage: calculate: [expression]"
}

// Execute evaluates the expression. Evaluation problems come back as an
// {"error": ...} payload rather than a failed call so the model sees what
// went wrong and can correct itself.
func (t *CalculatorTool) Execute(args string) (map[string]any, error) {
	expression := strings.TrimSpace(args)

	result, err := evaluate(expression)
	if err != nil {
		t.logger.Warn("calculation error",
			zap.String("expression", expression),
			zap.Error(err))
		return map[string]any{"error": fmt.Sprintf("Calculation error: %v", err)}, nil
	}

	return map[string]any{"result": result}, nil
}

// evaluate compiles and runs an arithmetic expression with pi and e in
// scope, rejecting anything that does not produce a finite number.
func evaluate(expression string) (float64, error) {
	program, err := expr.Compile(expression, expr.Env(calcEnv), expr.AsFloat64())
	if err != nil {
		return 0, fmt.Errorf("invalid expression: %w", err)
	}

	out, err := expr.Run(program, calcEnv)
	if err != nil {
		return 0, fmt.Errorf("error evaluating expression: %w", err)
	}

	n, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression did not produce a number")
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, fmt.Errorf("expression produced a non-finite result")
	}
	return n, nil
}

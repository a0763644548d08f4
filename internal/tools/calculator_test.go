package tools

import (
	"math"
	"strings"
	"testing"
)

func TestCalculator_Evaluate(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"2 + 3", 5},
		{"17.8 - 18.5", -0.7},
		{"4 * 2.5", 10},
		{"10 / 4", 2.5},
		{"2 ^ 10", 1024},
		{"10 % 3", 1},
		{"-5 + 3", -2},
		{"pi", math.Pi},
		{"2 * pi", 2 * math.Pi},
		{"e", math.E},
		{"(1 + 2) * 3", 9},
	}

	calc := NewCalculatorTool(nil)
	for _, tt := range tests {
		result, err := calc.Execute(tt.expression)
		if err != nil {
			t.Errorf("Execute(%q) error: %v", tt.expression, err)
			continue
		}

		got, ok := result["result"].(float64)
		if !ok {
			t.Errorf("Execute(%q) = %v, want numeric result", tt.expression, result)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Execute(%q) = %v, want %v", tt.expression, got, tt.want)
		}
	}
}

func TestCalculator_Errors(t *testing.T) {
	tests := []string{
		"1 / 0",
		"2 +",
		"import os",
		"unknown_var + 1",
		`"abc"`,
	}

	calc := NewCalculatorTool(nil)
	for _, expression := range tests {
		result, err := calc.Execute(expression)
		if err != nil {
			t.Errorf("Execute(%q) should absorb evaluation errors, got %v", expression, err)
			continue
		}

		msg, ok := result["error"].(string)
		if !ok || !strings.HasPrefix(msg, "Calculation error:") {
			t.Errorf("Execute(%q) = %v, want Calculation error payload", expression, result)
		}
	}
}

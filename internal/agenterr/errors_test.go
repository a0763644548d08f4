package agenterr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain error", errors.New("boom"), KindUnknown},
		{"tagged", New(KindWeatherAPI, "city not found"), KindWeatherAPI},
		{"wrapped tagged", fmt.Errorf("outer: %w", New(KindModelAPI, "503")), KindModelAPI},
		{"wrap with cause", Wrap(KindConfiguration, "missing key", errors.New("env empty")), KindConfiguration},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("%s: KindOf() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(KindToolExecution, "calculate failed", errors.New("division by zero"))

	got := err.Error()
	want := "tool_execution: calculate failed: division by zero"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, err.Err) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("run aborted: %w", Newf(KindModelAPI, "status %d", 429))

	if !IsKind(err, KindModelAPI) {
		t.Error("expected KindModelAPI match through the chain")
	}
	if IsKind(err, KindWeatherAPI) {
		t.Error("did not expect KindWeatherAPI match")
	}
}

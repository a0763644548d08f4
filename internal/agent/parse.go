package agent

import "regexp"

// actionPattern matches one Action line: `Action: <tool_name>: <args>`.
// Tool names are lowercase letters and underscores, matched
// case-insensitively; args run to the end of the line. First match wins,
// surrounding text is ignored.
var actionPattern = regexp.MustCompile(`(?i)Action: ([a-z_]+): ([^\n]+)`)

// action is a transient parse result, discarded after dispatch.
type action struct {
	Tool string
	Args string
}

// parseAction extracts a tool invocation from the model's reply, reporting
// false when no Action line exists.
func parseAction(reply string) (action, bool) {
	m := actionPattern.FindStringSubmatch(reply)
	if m == nil {
		return action{}, false
	}
	return action{Tool: m[1], Args: m[2]}, true
}

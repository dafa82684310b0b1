// Package display decides between human-readable and JSON output for
// the jsongen commands.
package display

import (
	"encoding/json"
	"os"
)

// MachineCaller reports whether jsongen was invoked by a tool rather
// than a person. Agents and scripts set JSONGEN_CALLER=llm to get
// machine output without passing --json everywhere.
func MachineCaller() bool {
	return os.Getenv("JSONGEN_CALLER") == "llm"
}

// MarshalJSON marshals with compact formatting for machine callers,
// pretty formatting for human-readable output
func MarshalJSON(v interface{}) ([]byte, error) {
	if MachineCaller() {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

package internals

import "strings"

// TraceIndent is the number of spaces per nesting level in the parse trace
const TraceIndent = 2

// Indent returns the leading spaces for a trace line at the given depth
func Indent(depth, width int) string {
	if depth <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*width)
}

// Quote renders a name the way diagnostics reference source names
func Quote(name string) string {
	return "'" + name + "'"
}

package runner

import (
	"sort"
	"strings"

	"vela/pkg/filter"
	"vela/pkg/value"
)

// formatRecord renders a record as "name=value" pairs in name order
func formatRecord(record filter.Record) string {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]string, len(names))
	for k, name := range names {
		fields[k] = name + "=" + value.Repr(record[name])
	}
	return strings.Join(fields, " ")
}

// isIncomplete reports whether source has unclosed brackets, ignoring
// string literals and comments
func isIncomplete(src string) bool {
	depth := 0
	inString, escaped, inComment := false, false, false

	for _, r := range src {
		switch {
		case inComment:
			inComment = r != '\n'
		case inString:
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
		case r == '#':
			inComment = true
		case r == '"':
			inString = true
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		}
	}

	return depth > 0 || inString
}

package valueparser

import (
	"fmt"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
)

// ParseArray parses a separated list such as an ALLOWED_UPDATES value or
// the arguments of a bot command. An empty separator means
// DefaultEntrySeparator. Entries are trimmed and blank ones are skipped,
// so "message, ,callback_query," yields two values.
//
// Example usage:
//
//	ids, err := valueparser.ParseArray[int64]("42 1001", " ")
func ParseArray[T ParsableType](value string, separator string) ([]T, yaerrors.Error) {
	entries := splitEntries(value, separator)
	result := make([]T, 0, len(entries))

	for _, entry := range entries {
		parsed, err := ParseValue[T](entry)
		if err != nil {
			return nil, err.Wrap(fmt.Sprintf("parse array: failed to parse entry %q", entry))
		}

		result = append(result, parsed)
	}

	return result, nil
}

func splitEntries(value string, separator string) []string {
	if separator == "" {
		separator = DefaultEntrySeparator
	}

	var entries []string

	for entry := range strings.SplitSeq(value, separator) {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}

	return entries
}

package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// loadDotEnv exports KEY=VALUE lines of path into the process environment.
// Blank lines and lines starting with # are skipped, an optional "export "
// prefix and surrounding quotes are stripped. Variables already present in
// the environment win.
func loadDotEnv(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")

		parts := strings.SplitN(line, "=", DotEnvKVParts)
		if len(parts) != DotEnvKVParts {
			return fmt.Errorf("%w: line %d", ErrInvalidDotEnvFileFormat, lineNumber)
		}

		key := strings.TrimSpace(parts[0])
		value := unquote(strings.TrimSpace(parts[1]))

		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			return value[1 : len(value)-1]
		}
	}

	return value
}

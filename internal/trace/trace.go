// Package trace gives the TUI somewhere to log. Stdout belongs to the
// renderer while the program runs, so debug output goes to a file named by
// the STOCKPILE_DEBUG environment variable and can be reviewed in-app.
package trace

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// EnvVar names the environment variable that enables debug logging.
const EnvVar = "STOCKPILE_DEBUG"

// Open returns a logger writing to the file named by STOCKPILE_DEBUG, or a
// logger that discards everything when the variable is unset. The returned
// path is empty when logging is disabled.
func Open() (*log.Logger, string, error) {
	path := strings.TrimSpace(os.Getenv(EnvVar))
	if path == "" {
		return log.New(io.Discard, "", 0), "", nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open debug log: %w", err)
	}
	return log.New(file, "", log.LstdFlags), path, nil
}

// Tail returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || strings.TrimSpace(path) == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read debug log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}

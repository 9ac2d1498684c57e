package env

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a dotenv file and sets each KEY=VALUE line that is not already present in the
// environment, so real environment variables win over the file. Empty lines, comments and
// an optional "export " prefix are skipped. A missing file is not an error.
// It returns the number of variables it set.
func Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	set := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return set, errors.Wrapf(err, "%s:%d: set %s", path, lineNo, key)
		}
		set++
	}
	return set, errors.Wrapf(scanner.Err(), "read %s", path)
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	k, v, found := strings.Cut(line, "=")
	key = strings.TrimSpace(k)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(v)
	// Remove surrounding quotes if present
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

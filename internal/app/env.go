package app

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// LoadEnvFiles loads one or more dotenv files of KEY=VALUE pairs into
// the process environment before the flag defaults are resolved, so
// LLM_BASE_URL, LLM_MODEL, LLM_API_KEY and HANDWRITING_FONT can live in
// a local .env instead of the shell. Later files override earlier ones;
// missing files are skipped. Lines starting with '#' and blank lines
// are ignored, and values are not expanded.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := loadEnvFile(p); err != nil {
			// Missing files are not fatal; continue to next path
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) == "" {
			// malformed lines are ignored silently
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		// strip optional surrounding quotes
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		_ = os.Setenv(key, val)
	}
	return scanner.Err()
}

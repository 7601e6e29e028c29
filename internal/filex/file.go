package filex

import (
	"fmt"
	"os"
)

// EnsureDir creates dir (and parents) if it does not exist yet and
// returns the path back for chaining into callers.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

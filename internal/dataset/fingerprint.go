package dataset

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the hex SHA3-256 digest of the file at path. It is
// recorded with each training run so runs over the same data can be matched.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return "", fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash dataset: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

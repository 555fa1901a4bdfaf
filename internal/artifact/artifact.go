// Package artifact identifies crash artifacts produced by a fuzzing
// campaign: the failing input file plus a short content fingerprint
// used for deduplication across reports.
package artifact

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// hashLen is the number of hex characters kept from the sha256 digest.
const hashLen = 16

// Artifact is the immutable identity of a failing input file.
type Artifact struct {
	Name string
	Path string
	Size int64
	// Hash is a short content-derived fingerprint (truncated sha256),
	// stable across runs for deduplication.
	Hash string
}

// FromFile reads the artifact at path and captures its identity.
// A missing or unreadable artifact is the one fatal precondition of the
// triage tool, so this is the only stage allowed to fail.
func FromFile(path string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	digest := sha256.Sum256(content)
	return &Artifact{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
		Hash: fmt.Sprintf("%x", digest)[:hashLen],
	}, nil
}

// ShortHash returns the first eight characters of the fingerprint, as
// used in issue titles.
func (a *Artifact) ShortHash() string {
	if len(a.Hash) < 8 {
		return a.Hash
	}
	return a.Hash[:8]
}

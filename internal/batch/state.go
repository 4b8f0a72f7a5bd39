package batch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// stateFile lives inside the output directory, in a hidden folder the
// walker never descends into.
const stateFile = ".chatmark/state.json"

// Entry records what a transcript was last rendered to.
type Entry struct {
	Hash   string `json:"hash"`   // source content hash; empty forces a re-render
	Output string `json:"output"` // slash path relative to the output directory
}

// State is the record of a previous batch run. Outputs are only trusted when
// Settings matches the fingerprint of the current run.
type State struct {
	Settings  string           `json:"settings"`
	Outputs   map[string]Entry `json:"outputs"` // keyed by source RelPath
	UpdatedAt time.Time        `json:"updated_at"`
}

// Fingerprint condenses everything that shapes a fragment besides the
// source text.
func Fingerprint(settings, wrapClass string) string {
	sum := sha256.Sum256([]byte(settings + "\x00" + wrapClass))
	return hex.EncodeToString(sum[:])
}

// LoadState reads the state kept in outDir. A missing file yields an empty state.
func LoadState(outDir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(stateFile)))
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Outputs: make(map[string]Entry)}, nil
		}
		return nil, err
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stateFile, err)
	}
	if s.Outputs == nil {
		s.Outputs = make(map[string]Entry)
	}
	return &s, nil
}

// Adopt switches the state to a new fingerprint. When it differs from the
// stored one every entry is marked stale but kept, so that outputs of
// vanished transcripts can still be cleaned up. It reports whether the
// fingerprint changed.
func (s *State) Adopt(fingerprint string) bool {
	if s.Settings == fingerprint {
		return false
	}
	for rel, e := range s.Outputs {
		e.Hash = ""
		s.Outputs[rel] = e
	}
	s.Settings = fingerprint
	return true
}

// Fresh reports whether relPath was last rendered from the same content to
// the same output.
func (s *State) Fresh(relPath, hash, output string) bool {
	e, ok := s.Outputs[relPath]
	return ok && e.Hash != "" && e.Hash == hash && e.Output == output
}

// Record notes a successful render.
func (s *State) Record(relPath, hash, output string) {
	s.Outputs[relPath] = Entry{Hash: hash, Output: output}
}

// Save writes the state into outDir, replacing the previous file atomically.
func (s *State) Save(outDir string) error {
	name := filepath.Join(outDir, filepath.FromSlash(stateFile))
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}

	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}

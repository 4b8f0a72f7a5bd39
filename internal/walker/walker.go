// Package walker finds saved chat transcripts under a directory.
package walker

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxSize is the largest transcript Walk returns (1 MB).
const DefaultMaxSize int64 = 1 << 20

// sniffLen bytes are checked for NUL to tell text from binary.
const sniffLen = 512

var (
	errBinary   = errors.New("binary content")
	errTooLarge = errors.New("too large")
)

// Transcript is one saved conversation found by Walk.
type Transcript struct {
	Path    string // absolute path on disk
	RelPath string // slash-separated, relative to the root
	Stem    string // RelPath without its extension; names the output
	Size    int64
	Hash    string // SHA-256 hex of the content
}

// Options selects transcripts.
type Options struct {
	Root    string
	Include []string
	Exclude []string
	MaxSize int64 // 0 means DefaultMaxSize
}

// Stem strips the extension from a slash-separated path.
func Stem(relPath string) string {
	return strings.TrimSuffix(relPath, path.Ext(relPath))
}

// Walk returns the text transcripts under opts.Root sorted by RelPath.
// Globs from the root's IgnoreFile are added to opts.Exclude. Unreadable,
// binary and oversized files are skipped.
func Walk(opts Options) ([]Transcript, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	ignored, err := readIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil, fmt.Errorf("walker: reading %s: %w", IgnoreFile, err)
	}
	filter, err := NewFilter(opts.Include, append(append([]string(nil), opts.Exclude...), ignored...))
	if err != nil {
		return nil, err
	}

	var found []Transcript
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			return nil
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if filter.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == IgnoreFile || !d.Type().IsRegular() || !filter.Match(rel) {
			return nil
		}

		size, hash, err := readTranscript(p, maxSize)
		if err != nil {
			return nil
		}
		found = append(found, Transcript{
			Path:    p,
			RelPath: rel,
			Stem:    Stem(rel),
			Size:    size,
			Hash:    hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].RelPath < found[j].RelPath })
	return found, nil
}

// Dedupe keeps the first transcript of every Stem, so "a.md" and "a.txt"
// never write the same output. The rest are returned as shadowed.
func Dedupe(ts []Transcript) (kept, shadowed []Transcript) {
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		if seen[t.Stem] {
			shadowed = append(shadowed, t)
			continue
		}
		seen[t.Stem] = true
		kept = append(kept, t)
	}
	return kept, shadowed
}

// readTranscript hashes a file in one pass, rejecting binary content and
// files above maxSize.
func readTranscript(name string, maxSize int64) (int64, string, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	r := bufio.NewReader(io.LimitReader(f, maxSize+1))
	head, _ := r.Peek(sniffLen)
	if bytes.IndexByte(head, 0) >= 0 {
		return 0, "", errBinary
	}

	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return 0, "", err
	}
	if n > maxSize {
		return 0, "", errTooLarge
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

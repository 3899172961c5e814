package contentfile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
)

// LoaderConfig configures content file discovery within a base directory.
type LoaderConfig struct {
	// Dir is the directory walked for content files, relative to the fs root.
	Dir string
	// Patterns limits discovered files; defaults to *.txt and *.md.
	Patterns []string
}

// Loader turns files under an fs.FS into RawDocuments with checksums.
// Plain .txt files use the colon-metadata format; .md files are accepted as
// an alternate format with a YAML frontmatter block.
type Loader struct {
	fs       fs.FS
	dir      string
	patterns []string
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"*.txt", "*.md"}
	}
	return &Loader{
		fs:       filesystem,
		dir:      path.Clean(cfg.Dir),
		patterns: patterns,
	}
}

// LoadFile reads and parses a single content file, recording its sha256
// checksum for change detection.
func (l *Loader) LoadFile(ctx context.Context, name string) (*RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("contentfile: read %s: %w", name, err)
	}

	var doc *RawDocument
	if strings.EqualFold(path.Ext(name), ".md") {
		doc, err = parseMarkdown(data)
	} else {
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("contentfile: parse %s: %w", name, err)
	}

	ApplyAliases(doc)

	sum := sha256.Sum256(data)
	doc.Path = name
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory discovers content files under the configured directory and
// returns them sorted by path so runs are deterministic. Unparseable files
// are returned alongside the documents rather than aborting the walk; the
// pipeline decides how to report them.
func (l *Loader) LoadDirectory(ctx context.Context) ([]*RawDocument, []FileError, error) {
	root := l.dir
	if root == "" {
		root = "."
	}

	var docs []*RawDocument
	var failures []FileError

	err := fs.WalkDir(l.fs, root, func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if name != root {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(path.Base(name)) {
			return nil
		}

		doc, err := l.LoadFile(ctx, name)
		if err != nil {
			failures = append(failures, FileError{Path: name, Err: err})
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return docs, failures, nil
}

func (l *Loader) matches(base string) bool {
	for _, pattern := range l.patterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// FileError pairs a source path with the error that made it unloadable.
type FileError struct {
	Path string
	Err  error
}

// parseMarkdown maps a YAML frontmatter document onto the same raw field
// representation the .txt parser produces. Scalar values are stringified;
// string lists become comma-joined values, matching how list fields are
// written in the flat format.
func parseMarkdown(source []byte) (*RawDocument, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	doc := &RawDocument{
		Fields: make(map[string]string, len(meta)),
		Body:   strings.TrimSpace(string(body)),
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		normalized := NormalizeKey(key)
		if normalized == "" {
			continue
		}
		doc.Fields[normalized] = stringifyValue(meta[key])
		doc.Keys = append(doc.Keys, normalized)
	}
	return doc, nil
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringifyValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

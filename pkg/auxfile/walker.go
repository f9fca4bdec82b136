// Package auxfile discovers the auxiliary metadata files reachable from a root
// .aux file through \@input directives.
//
// Traversal uses an explicit stack and a visited set keyed by absolute path, so
// every file is read exactly once and inclusion cycles terminate. Included
// files that do not exist are skipped: LaTeX writes child .aux files lazily and
// a partial build is normal. Only a missing root is fatal.
package auxfile

import (
	"iter"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"

	"github.com/agentstation/floataudit/pkg/directive"
	"github.com/agentstation/floataudit/pkg/errors"
	"github.com/agentstation/floataudit/pkg/logging"
)

// File is one decoded auxiliary file.
type File struct {
	// Path is absolute and cleaned.
	Path string
	// Text is the decoded content; undecodable bytes appear as U+FFFD.
	Text string
	// Depth is the inclusion distance from the root (root is 0).
	Depth int
	// Parent is the path of the including file, empty for the root.
	Parent string
}

// Walker reads auxiliary files from a filesystem.
type Walker struct {
	fs       afero.Fs
	encoding encoding.Encoding
	logger   *zerolog.Logger
}

// Option configures a Walker.
type Option func(*Walker) error

// WithFs sets the filesystem to read from. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(w *Walker) error {
		w.fs = fs
		return nil
	}
}

// WithEncoding sets the charset used to decode files, by WHATWG label
// ("utf-8", "latin1", "windows-1252", ...).
func WithEncoding(name string) Option {
	return func(w *Walker) error {
		enc, err := LookupEncoding(name)
		if err != nil {
			return err
		}
		w.encoding = enc
		return nil
	}
}

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(w *Walker) error {
		w.logger = logger
		return nil
	}
}

// NewWalker creates a Walker.
func NewWalker(opts ...Option) (*Walker, error) {
	w := &Walker{
		fs:       afero.NewOsFs(),
		encoding: defaultEncoding(),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

type pending struct {
	path   string
	parent string
	depth  int
}

// Walk lazily yields root and every file transitively included from it.
//
// Files come out depth-first, most recently discovered first. A missing root
// yields a *errors.NotFoundError; a file that exists but cannot be read yields
// an *errors.IOError. Both end the sequence.
func (w *Walker) Walk(root string) iter.Seq2[*File, error] {
	return func(yield func(*File, error) bool) {
		rootPath, err := filepath.Abs(root)
		if err != nil {
			yield(nil, errors.WrapIO("resolve", root, err))
			return
		}

		stack := []pending{{path: rootPath}}
		visited := make(map[string]struct{})

		for len(stack) > 0 {
			next := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if _, seen := visited[next.path]; seen {
				continue
			}

			if !w.isFile(next.path) {
				if next.depth == 0 {
					yield(nil, errors.NewNotFoundError("metadata file", next.path))
					return
				}
				w.logger.Debug().
					Str("file", next.path).
					Str("included_from", next.parent).
					Msg("Skipping missing included file")
				continue
			}
			visited[next.path] = struct{}{}

			text, err := w.read(next.path)
			if err != nil {
				yield(nil, errors.WrapIO("read", next.path, err))
				return
			}

			file := &File{Path: next.path, Text: text, Depth: next.depth, Parent: next.parent}
			if !yield(file, nil) {
				return
			}

			dir := filepath.Dir(next.path)
			for _, rel := range directive.Inputs(text) {
				child := resolve(dir, rel)
				if _, seen := visited[child]; seen {
					continue
				}
				stack = append(stack, pending{path: child, parent: next.path, depth: next.depth + 1})
			}
		}
	}
}

// isFile reports whether path exists and is not a directory.
func (w *Walker) isFile(path string) bool {
	info, err := w.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// read opens, fully reads and closes one file, then decodes it.
func (w *Walker) read(path string) (string, error) {
	b, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return "", err
	}
	return Decode(w.encoding, b), nil
}

// resolve interprets an \@input argument relative to the including file's directory.
func resolve(dir, rel string) string {
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(dir, rel)
}

package fileserver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

// Kind identifies what a request path resolved to.
type Kind int

const (
	KindMissing Kind = iota
	KindDirectory
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "missing"
	}
}

// Entry is an immediate child of a listed directory.
type Entry struct {
	Name string
	Href string
}

// Result is the outcome of resolving a request path.
type Result struct {
	Kind Kind

	// Path is the candidate filesystem path, root included.
	Path string

	Entries []Entry
	Content []byte
}

// Dir is a directory tree exposed to HTTP clients.
type Dir struct {
	root *os.Root
	path string
}

// Open opens the directory at path as the server root.
func Open(path string) (*Dir, error) {
	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", path, err)
	}

	return &Dir{root: root, path: path}, nil
}

func (d *Dir) Path() string {
	return d.path
}

// FS returns a read-only view of the tree.
func (d *Dir) FS() fs.FS {
	return d.root.FS()
}

func (d *Dir) Close() error {
	return d.root.Close()
}

// Resolve maps urlPath onto the tree.
//
// A path that does not exist yields a KindMissing result and a nil error.
// Any other filesystem failure is returned as an error.
func (d *Dir) Resolve(urlPath string) (*Result, error) {
	rel := cleanPath(urlPath)
	name := filepath.FromSlash(rel)
	candidate := filepath.Join(d.path, name)

	info, err := d.root.Stat(name)
	if err != nil {
		if isNotExist(err) {
			return &Result{Kind: KindMissing, Path: candidate}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", candidate, err)
	}

	switch {
	case info.IsDir():
		entries, err := d.list(name, rel)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", candidate, err)
		}
		return &Result{Kind: KindDirectory, Path: candidate, Entries: entries}, nil
	case info.Mode().IsRegular():
		content, err := d.read(name)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", candidate, err)
		}
		return &Result{Kind: KindFile, Path: candidate, Content: content}, nil
	default:
		return nil, fmt.Errorf("%s is not a regular file (mode %s)", candidate, info.Mode().Type())
	}
}

// list returns the entries of name in the order the filesystem yields them.
func (d *Dir) list(name, rel string) ([]Entry, error) {
	f, err := d.root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{
			Name: de.Name(),
			Href: href(rel, de.Name()),
		})
	}
	return entries, nil
}

func (d *Dir) read(name string) ([]byte, error) {
	f, err := d.root.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// cleanPath turns a URL path into a slash-separated path relative to the root.
// Leading ".." elements are dropped by cleaning against "/".
func cleanPath(urlPath string) string {
	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" {
		return "."
	}
	return rel
}

func href(rel, name string) string {
	u := &url.URL{Path: "/" + path.Join(rel, name)}
	return u.EscapedPath()
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

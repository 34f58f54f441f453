// Package resolver implements the lookup policy for import targets.
// Import paths are taken relative to a root directory (by default the
// directory the interpreter is installed in), get the source file
// extension appended when they have none, and are canonicalised so
// that a file is only ever imported once per interpreter.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the extension of importable source files.
const Extension = ".scm"

type ResolverError struct {
	Path    string // the path we tried
	Message string
}

func (re *ResolverError) Error() string { return re.String() }
func (re *ResolverError) String() string {
	if re.Message == "" {
		return fmt.Sprintf("cannot import file: %s", re.Path)
	}
	return fmt.Sprintf("cannot import file: %s: %s", re.Path, re.Message)
}

type Resolver struct {
	root string
	// canonical paths of every imported file, in import order.
	imported []string
	seen     map[string]bool
}

func New(root string) *Resolver {
	if root == "" {
		root = DefaultRoot()
	}
	return &Resolver{
		root: root,
		seen: map[string]bool{},
	}
}

// DefaultRoot is the directory of the running executable, or the
// working directory if that cannot be determined.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func (r *Resolver) Root() string { return r.root }

// Resolve maps an import path to the canonical path of an existing
// source file.
func (r *Resolver) Resolve(spec string) (string, error) {
	path := spec
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	switch filepath.Ext(path) {
	case Extension:
	case "":
		path += Extension
	default:
		return "", &ResolverError{Path: path, Message: "not a " + Extension + " file"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", &ResolverError{Path: path}
	}
	if info.IsDir() {
		return "", &ResolverError{Path: path, Message: "is a directory"}
	}
	return canonical(path)
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ResolverError{Path: path, Message: err.Error()}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &ResolverError{Path: abs, Message: err.Error()}
	}
	return resolved, nil
}

// Imported reports whether the canonical path was already imported.
func (r *Resolver) Imported(path string) bool { return r.seen[path] }

// Mark records a canonical path as imported. It is called before the
// file is evaluated, so a file that imports itself (directly or not)
// sees the import as already done.
func (r *Resolver) Mark(path string) {
	if r.seen[path] {
		return
	}
	r.seen[path] = true
	r.imported = append(r.imported, path)
}

// Files returns the imported canonical paths in import order.
func (r *Resolver) Files() []string {
	files := make([]string, len(r.imported))
	copy(files, r.imported)
	return files
}

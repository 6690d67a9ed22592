package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// Locator turns a module-style reference into a canonical location.
type Locator interface {
	Locate(ref string) (string, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ref string) (string, error)

// Locate implements Locator.
func (f LocatorFunc) Locate(ref string) (string, error) {
	return f(ref)
}

// DefaultExtensions are tried, in order, when a reference has no file of its own.
var DefaultExtensions = []string{".js", ".json"}

// FileLocator finds references on the local filesystem. A reference is tried
// relative to Directory and then to each of SearchPaths: first as written,
// then with each extension appended, then as a directory holding an index
// file with one of the extensions. The result is an absolute, cleaned path.
type FileLocator struct {
	Directory   string
	SearchPaths []string
	Extensions  []string
}

// NewFileLocator returns a FileLocator rooted at dir using DefaultExtensions.
func NewFileLocator(dir string, searchPaths ...string) *FileLocator {
	return &FileLocator{
		Directory:   dir,
		SearchPaths: searchPaths,
		Extensions:  DefaultExtensions,
	}
}

// Locate implements Locator.
func (l *FileLocator) Locate(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", &NotFoundError{Reference: ref}
	}

	var tried []string
	for _, base := range l.bases(ref) {
		for _, candidate := range l.candidates(base) {
			tried = append(tried, candidate)
			if isRegularFile(candidate) {
				return filepath.Abs(candidate)
			}
		}
	}
	return "", &NotFoundError{Reference: ref, Tried: tried}
}

// bases returns the locations a reference may live at. Absolute references
// and explicitly relative ones ("./x", "../x") are only tried against
// Directory; bare names also walk SearchPaths.
func (l *FileLocator) bases(ref string) []string {
	if filepath.IsAbs(ref) {
		return []string{filepath.Clean(ref)}
	}
	bases := []string{filepath.Join(l.Directory, ref)}
	if isExplicitlyRelative(ref) {
		return bases
	}
	for _, dir := range l.SearchPaths {
		bases = append(bases, filepath.Join(dir, ref))
	}
	return bases
}

func (l *FileLocator) candidates(base string) []string {
	exts := l.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	out := make([]string, 0, 1+2*len(exts))
	out = append(out, base)
	for _, ext := range exts {
		out = append(out, base+ext)
	}
	for _, ext := range exts {
		out = append(out, filepath.Join(base, "index"+ext))
	}
	return out
}

func isExplicitlyRelative(ref string) bool {
	return ref == "." || ref == ".." ||
		strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") ||
		strings.HasPrefix(ref, "."+string(filepath.Separator)) ||
		strings.HasPrefix(ref, ".."+string(filepath.Separator))
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

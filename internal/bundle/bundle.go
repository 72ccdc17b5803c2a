// Package bundle loads the static file bundles shipped with the deployment
// artifact. A bundle is an immutable name-to-content mapping that flows
// unchanged into ConfigMap data and container file pushes.
package bundle

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// NamespacePlaceholder is replaced with the target namespace in every file
// at load time. The SPGW config files reference cluster-internal DNS names
// that embed the namespace.
const NamespacePlaceholder = "NAMESPACE"

// Bundle maps base file names to their content.
type Bundle map[string]string

// Load reads every file matching pattern from fsys and returns the bundle.
// Files are keyed by base name; the namespace placeholder is substituted
// during the read. A pattern that matches nothing yields an empty bundle,
// not an error — whether an empty bundle is acceptable is decided by the
// desired-state builder.
func Load(fsys fs.FS, pattern, namespace string) (Bundle, error) {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid bundle pattern %q: %w", pattern, err)
	}

	b := make(Bundle, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read bundle file %q: %w", name, err)
		}
		content := string(data)
		if namespace != "" {
			content = strings.ReplaceAll(content, NamespacePlaceholder, namespace)
		}
		b[path.Base(name)] = content
	}
	return b, nil
}

// Names returns the file names in the bundle, sorted for deterministic
// iteration.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the bundle holds no files.
func (b Bundle) IsEmpty() bool { return len(b) == 0 }

package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Different canvases or users get separate cache namespaces while sharing
// one backend.
//
// Example usage:
//
//	// Canvas-specific keys
//	canvasKeyer := NewScopedKeyer(NewDefaultKeyer(), "canvas:abc123:")
//
//	// Global keys for shared trees
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TreeKey generates a prefixed key for a parsed axis tree.
func (k *ScopedKeyer) TreeKey(contentHash string) string {
	return k.prefix + k.inner.TreeKey(contentHash)
}

// LayoutKey generates a prefixed key for a computed grid layout.
func (k *ScopedKeyer) LayoutKey(treeHash, mappingHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(treeHash, mappingHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

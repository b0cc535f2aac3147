package cache

// ScopedKeyer wraps a Keyer with a prefix so several datasets can share one
// backend. The server scopes keys by the data file it serves.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses the default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for a rendered chart.
func (k *ScopedKeyer) ArtifactKey(scoresHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(scoresHash, opts)
}

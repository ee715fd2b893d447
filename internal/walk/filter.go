package dirwalk

// FilterConfig selects which entry kinds are emitted.
type FilterConfig struct {
	Links bool // Emit symbolic links
	Dirs  bool // Emit directories, readable or not
	Files bool // Emit regular files

	// Active is true when any of Links, Dirs or Files was explicitly requested.
	// An inactive filter emits every kind, including sockets, FIFOs and devices.
	Active bool
}

// NewFilterConfig builds a FilterConfig from explicitly requested types.
func NewFilterConfig(links, dirs, files bool) FilterConfig {
	return FilterConfig{
		Links:  links,
		Dirs:   dirs,
		Files:  files,
		Active: links || dirs || files,
	}
}

// Resolve applies the default-all-types policy. It is called once before a
// walk starts.
func (c FilterConfig) Resolve() FilterConfig {
	if !c.Active {
		c.Links, c.Dirs, c.Files = true, true, true
	}
	return c
}

// Matches reports whether an entry of the given kind should be emitted.
// KindUnknown never matches.
func Matches(kind EntryKind, cfg FilterConfig) bool {
	if kind == KindUnknown {
		return false
	}
	if !cfg.Active {
		return true
	}
	switch kind {
	case KindSymlink:
		return cfg.Links
	case KindDirectory, KindUnreadableDir:
		return cfg.Dirs
	case KindRegular:
		return cfg.Files
	default:
		return false
	}
}

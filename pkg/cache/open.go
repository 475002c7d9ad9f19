package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvCache names the environment variable consulted when no --cache flag
// is given.
const EnvCache = "STACKCHART_CACHE"

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear() error
}

// DefaultDir returns the file cache directory: $XDG_CACHE_HOME/stackchart,
// or ~/.cache/stackchart when XDG_CACHE_HOME is unset.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "stackchart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "stackchart"), nil
}

// Open selects a backend from spec:
//
//	""                       file cache in DefaultDir
//	"none", "off"            NullCache
//	"redis://…", "rediss://…" RedisCache
//	"mongodb://…"            MongoCache (also mongodb+srv)
//	anything else            file cache rooted at that directory
//
// Other URL schemes fail with ErrUnsupportedBackend.
func Open(ctx context.Context, spec string) (Cache, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		return NewFileCache(dir)
	case spec == "none" || spec == "off":
		return NewNullCache(), nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		return NewRedisCache(ctx, spec)
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		return NewMongoCache(ctx, spec)
	case strings.Contains(spec, "://"):
		scheme, _, _ := strings.Cut(spec, "://")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, scheme)
	default:
		return NewFileCache(spec)
	}
}

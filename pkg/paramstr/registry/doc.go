// Package registry provides a generic thread-safe registry for values indexed by key.
//
// Registry is designed for read-heavy workloads using sync.RWMutex. The
// catalog package keeps its compiled templates in one, and caches compiled
// patterns in another.
//
// # Basic Usage
//
//	r := registry.New[string, *paramstr.Template]()
//	r.Register("user", paramstr.MustCompile("/users/{id}"))
//
//	tmpl, ok := r.Get("user")
//
// # Lazy Initialization
//
// GetOrCreate builds a value on first use. The factory may fail, in which
// case nothing is stored:
//
//	cache := registry.New[string, *paramstr.Template]()
//	tmpl, err := cache.GetOrCreate(pattern, func() (*paramstr.Template, error) {
//	    return paramstr.Compile(pattern)
//	})
//
// # Atomic Reload
//
// Replace swaps every entry at once, so a reload never exposes a partially
// updated registry:
//
//	r.Replace(map[string]*paramstr.Template{"user": u, "order": o})
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Snapshot returns a copy
// that may be iterated while the registry changes.
package registry

package expand

import "github.com/vk/paramgridgo/internal/naming"

// DefaultNamePattern is the shape generated unit names take when no
// custom pattern is configured: base__<label>, with __2, __3, ... suffixes
// on collision.
const DefaultNamePattern = naming.DefaultPattern

// NameInfo carries the fields a name pattern may substitute:
// {base_name}, {base_obj}, {label} and {count}.
type NameInfo = naming.Info

// NameFormatter renders generated unit names from the configured pattern.
type NameFormatter = naming.Formatter

// SetNamePattern replaces the process-wide name pattern for generated
// units. An empty string resets to DefaultNamePattern.
func SetNamePattern(pattern string) { naming.SetPattern(pattern) }

// NamePattern returns the currently configured name pattern.
func NamePattern() string { return naming.Pattern() }

// SetNameFormatter replaces the process-wide name formatting strategy.
// Passing nil resets to the default formatter.
func SetNameFormatter(f NameFormatter) { naming.SetFormatter(f) }

// Package naming synthesizes collision-free names for generated units.
//
// The pattern and formatter are process-wide configuration, matching the
// engine's single marking/expansion pass; both reset to the default when
// cleared. Collision checks run against an explicit used-names set that the
// caller assembles up front, never against live namespace probing.
package naming

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultPattern is the shape of a generated unit's name when no custom
// pattern is configured.
const DefaultPattern = "{base_name}__<{label}>"

// Info carries the substitution fields a pattern may reference.
type Info struct {
	BaseName string // {base_name}
	BaseObj  any    // {base_obj}
	Label    string // {label}
	Count    int    // {count}, 1-based ordinal in enumeration order
}

// Formatter renders a name from a pattern and its substitution fields.
type Formatter interface {
	Format(pattern string, info Info) string
}

type defaultFormatter struct{}

func (defaultFormatter) Format(pattern string, info Info) string {
	r := strings.NewReplacer(
		"{base_name}", info.BaseName,
		"{base_obj}", fmt.Sprintf("%v", info.BaseObj),
		"{label}", info.Label,
		"{count}", strconv.Itoa(info.Count),
	)
	return r.Replace(pattern)
}

var (
	mu        sync.RWMutex
	pattern             = DefaultPattern
	formatter Formatter = defaultFormatter{}
)

// SetPattern replaces the process-wide name pattern. An empty string
// resets to DefaultPattern.
func SetPattern(p string) {
	mu.Lock()
	defer mu.Unlock()
	if p == "" {
		pattern = DefaultPattern
		return
	}
	pattern = p
}

// Pattern returns the currently configured pattern.
func Pattern() string {
	mu.RLock()
	defer mu.RUnlock()
	return pattern
}

// SetFormatter replaces the process-wide formatter. Passing nil resets to
// the default formatter.
func SetFormatter(f Formatter) {
	mu.Lock()
	defer mu.Unlock()
	if f == nil {
		formatter = defaultFormatter{}
		return
	}
	formatter = f
}

// Synthesize formats a name for info and makes it unique against used:
// colliding candidates get __2, __3, ... suffixes until free. The chosen
// name is reserved in used before returning, so a batch never hands out
// the same name twice.
func Synthesize(info Info, used map[string]struct{}) string {
	mu.RLock()
	p, f := pattern, formatter
	mu.RUnlock()

	stem := f.Format(p, info)
	name := stem
	for tag := 2; ; tag++ {
		if _, taken := used[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s__%d", stem, tag)
	}
	used[name] = struct{}{}
	return name
}

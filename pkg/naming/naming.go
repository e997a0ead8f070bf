// Package naming resolves output file names from a pattern template and a
// per-item context. Resolution is pure and never fails: patterns that
// reference unknown tokens fall back to a fixed default so naming can
// never abort a batch.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultSuffix is appended to the stem when a pattern cannot be resolved
const DefaultSuffix = "_resized"

// Context carries the per-item values available to a naming pattern
type Context struct {
	// Name is the source file's stem (base name without extension)
	Name string
	// OriginalName is the source file's full base name
	OriginalName string
	// Index is the item's 1-based position in the original input list
	Index int
	// Width and Height are the requested target dimensions
	Width  int
	Height int
}

var (
	braceRe = regexp.MustCompile(`\{[^{}]*\}`)
	tokenRe = regexp.MustCompile(`^\{([a-z_]+)(?::0?(\d+)d)?\}$`)
)

// Resolve substitutes the context values into the pattern. Supported
// tokens are {name}, {original_name}, {index}, {width} and {height};
// {index} accepts a zero-padding width, e.g. {index:03d}. Any other token
// resolves the whole pattern to "<stem>_resized".
func Resolve(pattern string, ctx Context) string {
	bad := false
	resolved := braceRe.ReplaceAllStringFunc(pattern, func(tok string) string {
		m := tokenRe.FindStringSubmatch(tok)
		if m == nil {
			bad = true
			return tok
		}
		name, padSpec := m[1], m[2]
		if padSpec != "" && name != "index" {
			// numeric padding only makes sense for the sequence index
			bad = true
			return tok
		}
		switch name {
		case "name":
			return ctx.Name
		case "original_name":
			return ctx.OriginalName
		case "index":
			pad := 0
			if padSpec != "" {
				pad, _ = strconv.Atoi(padSpec)
			}
			return fmt.Sprintf("%0*d", pad, ctx.Index)
		case "width":
			return strconv.Itoa(ctx.Width)
		case "height":
			return strconv.Itoa(ctx.Height)
		}
		bad = true
		return tok
	})
	if bad {
		return ctx.Name + DefaultSuffix
	}
	return resolved
}

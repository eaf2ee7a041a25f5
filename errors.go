package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeDuplicateKey         = "duplicate_key"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeUnionNoMatch         = "union_no_match"
	CodeParseError           = "parse_error"
	CodeTruncated            = "truncated"
)

// Issue represents a single path violation against a shape.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, tried union tags, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"expected":"number",
	// "actual":"string"}) for i18n and observability.
	Params map[string]any
}

// Issues is an ordered collection of violations that implements error.
// Ordering follows the declaration order of the shape (depth-first), never
// the discovery order in the input, so identical inputs report identically.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with the JSON Pointer token for field,
// producing child issues located under their parent. Root paths ("" or "/")
// collapse onto the field itself.
func Rebase(field string, iss Issues) Issues {
	if len(iss) == 0 {
		return nil
	}
	base := "/" + EscapePointerToken(field)
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapePointerToken escapes a single JSON Pointer reference token (RFC 6901).
func EscapePointerToken(s string) string { return pointerEscaper.Replace(s) }

// UsageError reports descriptor misuse: duplicate object fields, duplicate
// union tags, non-exhaustive dispatchers, classification against an unrelated
// shape, or descriptor recursion beyond the depth guard. These are programmer
// errors, never produced by malformed input, and are surfaced by panic from
// Must* constructors and from the engine's guards.
type UsageError struct {
	Op     string // the operation that was misused, e.g. "shape.Object"
	Detail string
}

func (e *UsageError) Error() string { return "goshape: " + e.Op + ": " + e.Detail }

package goshape

import (
	"context"
	"io"

	eng "github.com/okisaka/goshape/internal/engine"
)

// Validate is the engine entry point for already-decoded input. It walks v
// against s and returns either a Validated proof token or Issues. Any single
// violation anywhere rejects the whole value; callers must not read the raw
// input after a failed validation.
//
// Validate is deterministic and idempotent: two calls with the same inputs
// yield identical results, including violation ordering.
func Validate(ctx context.Context, s Shape, v any) (Validated, error) {
	if s == nil {
		panic(&UsageError{Op: "goshape.Validate", Detail: "nil shape"})
	}
	out, err := s.Parse(ctx, v)
	if err != nil {
		return Validated{}, toIssues(err)
	}
	return Validated{value: out, shape: s}, nil
}

// ValidateWithMeta validates and collects presence metadata from the
// validated value.
func ValidateWithMeta(ctx context.Context, s Shape, v any, opts ...ParseOpt) (Decoded, error) {
	opt := normalizeWithMetaOpt(opts)
	d, err := Validate(ctx, s, v)
	if err != nil {
		return Decoded{}, err
	}
	pm := applyPresenceOptions(collectPresenceMapFromValue(d.Value()), opt.Presence)
	return Decoded{Validated: d, Presence: pm}, nil
}

// ValidateFrom consumes tokens from the Source, builds the canonical any
// value under streaming enforcement (duplicate keys, depth, bytes), and
// delegates to Validate.
func ValidateFrom(ctx context.Context, s Shape, src Source, opts ...ParseOpt) (Validated, error) {
	if s == nil {
		panic(&UsageError{Op: "goshape.ValidateFrom", Detail: "nil shape"})
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	// propagate fail-fast intent via context for shape implementations
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return Validated{}, toIssues(err)
	}
	return Validate(ctx, s, v)
}

// ValidateFromWithMeta is ValidateFrom plus presence collection.
func ValidateFromWithMeta(ctx context.Context, s Shape, src Source, opts ...ParseOpt) (Decoded, error) {
	opt := normalizeWithMetaOpt(opts)
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return Decoded{}, toIssues(err)
	}
	return ValidateWithMeta(ctx, s, v, opt)
}

// StreamValidate validates input by streaming tokens from an io.Reader.
// When MaxBytes is set it enforces the size cap up front, otherwise it
// delegates directly to ValidateFrom via the Source driver.
func StreamValidate(ctx context.Context, s Shape, r io.Reader, opts ...ParseOpt) (Validated, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		max := opts[len(opts)-1].MaxBytes
		lr := io.LimitReader(r, max+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return Validated{}, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > max {
			return Validated{}, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ValidateFrom(ctx, s, JSONBytes(data), opts...)
	}
	return ValidateFrom(ctx, s, JSONReader(r), opts...)
}

// SafeValidate validates v, returning (zero, false) on validation failure.
func SafeValidate(ctx context.Context, s Shape, v any) (Validated, bool) {
	d, err := Validate(ctx, s, v)
	if err != nil {
		return Validated{}, false
	}
	return d, true
}

// Is reports whether v conforms to the shape s.
func Is(ctx context.Context, s Shape, v any) bool {
	_, err := Validate(ctx, s, v)
	return err == nil
}

// ---- helpers (parse options, decode, error mapping) ----

func normalizeWithMetaOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if !opt.Presence.Collect && len(opt.Presence.Include) == 0 && len(opt.Presence.Exclude) == 0 {
		opt.Presence.Collect = true
	}
	return opt
}

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	engSrc := EngineTokenSource(src)
	enforced := eng.WrapWithEnforcement(engSrc, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	switch src.NumberMode() {
	case NumberFloat64:
		return eng.DecodeAnyFromSourceAsFloat64(enforced)
	default:
		return eng.DecodeAnyFromSource(enforced)
	}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	if ie, ok := err.(eng.IssueError); ok {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast behavior. This is
// set by ValidateFrom based on ParseOpt and consumed by shape implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current validation should stop on the first
// issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

package shape

import (
	"context"
	"strings"

	goshape "github.com/okisaka/goshape"
	"github.com/okisaka/goshape/i18n"
	js "github.com/okisaka/goshape/jsonschema"
)

// Tag names the union member a validated value belongs to.
type Tag string

type unionMember struct {
	tag   Tag
	shape goshape.Shape
}

// Union is a tagged union of member shapes, in declaration order.
//
// With an explicit Discriminator field the member is selected by an O(1)
// field read. Without one, discrimination is structural: members are tried in
// declaration order and the earliest full match wins. That tie-break decides
// ambiguous values matching more than one member, so declare the more
// specific member first.
type Union struct {
	discriminator string
	members       []unionMember
	index         map[Tag]int
}

var _ goshape.Shape = (*Union)(nil)

// UnionBuilder accumulates members; call Build (or MustBuild) to obtain the
// immutable Union.
type UnionBuilder struct {
	discriminator string
	members       []unionMember
	err           *goshape.UsageError
}

// NewUnion creates a union builder.
func NewUnion() *UnionBuilder { return &UnionBuilder{} }

// Discriminator sets the explicit discriminant field. Every member must be an
// object shape declaring this field.
func (b *UnionBuilder) Discriminator(field string) *UnionBuilder {
	b.discriminator = field
	return b
}

// Variant appends a member with its tag. Declaration order is significant.
func (b *UnionBuilder) Variant(tag string, s goshape.Shape) *UnionBuilder {
	if b.err == nil && s == nil {
		b.err = &goshape.UsageError{Op: "shape.Union", Detail: "nil shape for variant '" + tag + "'"}
		return b
	}
	b.members = append(b.members, unionMember{tag: Tag(tag), shape: s})
	return b
}

// Build validates the builder and returns the union. Duplicate tags and, in
// discriminator mode, members that do not declare the discriminant field are
// programmer errors.
func (b *UnionBuilder) Build() (*Union, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.members) == 0 {
		return nil, &goshape.UsageError{Op: "shape.Union", Detail: "union needs at least one variant"}
	}
	index := make(map[Tag]int, len(b.members))
	for i, m := range b.members {
		if _, dup := index[m.tag]; dup {
			return nil, &goshape.UsageError{Op: "shape.Union", Detail: "duplicate variant tag '" + string(m.tag) + "'"}
		}
		index[m.tag] = i
		if b.discriminator != "" {
			obj, ok := m.shape.(*ObjectShape)
			if !ok || !obj.declaresField(b.discriminator) {
				return nil, &goshape.UsageError{
					Op:     "shape.Union",
					Detail: "variant '" + string(m.tag) + "' must be an object declaring discriminator '" + b.discriminator + "'",
				}
			}
		}
	}
	members := make([]unionMember, len(b.members))
	copy(members, b.members)
	return &Union{discriminator: b.discriminator, members: members, index: index}, nil
}

// MustBuild is like Build but panics on error.
func (b *UnionBuilder) MustBuild() *Union {
	u, err := b.Build()
	if err != nil {
		panic(err)
	}
	return u
}

func (u *Union) Kind() goshape.Kind { return goshape.KindUnion }

// Tags returns the member tags in declaration order.
func (u *Union) Tags() []Tag {
	out := make([]Tag, len(u.members))
	for i, m := range u.members {
		out[i] = m.tag
	}
	return out
}

// Member returns the shape declared for tag.
func (u *Union) Member(tag Tag) (goshape.Shape, bool) {
	i, ok := u.index[tag]
	if !ok {
		return nil, false
	}
	return u.members[i].shape, true
}

func (u *Union) Parse(ctx context.Context, v any) (any, error) {
	if u.discriminator != "" {
		return u.parseDiscriminated(ctx, v)
	}
	return u.parseStructural(ctx, v)
}

func (u *Union) parseDiscriminated(ctx context.Context, v any) (any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeIssue(goshape.KindObject, v)
	}
	dv, present := m[u.discriminator]
	tag, isString := dv.(string)
	if !present || !isString {
		return nil, goshape.Issues{goshape.Issue{
			Path:    "/" + goshape.EscapePointerToken(u.discriminator),
			Code:    goshape.CodeDiscriminatorMissing,
			Message: i18n.T(goshape.CodeDiscriminatorMissing, nil),
			Hint:    "discriminator missing",
		}}
	}
	i, known := u.index[Tag(tag)]
	if !known {
		return nil, goshape.Issues{goshape.Issue{
			Path:    "/" + goshape.EscapePointerToken(u.discriminator),
			Code:    goshape.CodeDiscriminatorUnknown,
			Message: i18n.T(goshape.CodeDiscriminatorUnknown, nil),
			Hint:    "unknown variant '" + tag + "'",
			Params:  map[string]any{"tag": tag},
		}}
	}
	return u.members[i].shape.Parse(descend(ctx), v)
}

func (u *Union) parseStructural(ctx context.Context, v any) (any, error) {
	for _, m := range u.members {
		out, err := m.shape.Parse(descend(ctx), v)
		if err == nil {
			return out, nil
		}
	}
	// One violation at the union path listing the tried tags; member-internal
	// mismatches are not exploded onto the caller.
	tried := make([]string, len(u.members))
	for i, m := range u.members {
		tried[i] = string(m.tag)
	}
	return nil, goshape.Issues{goshape.Issue{
		Path:    "/",
		Code:    goshape.CodeUnionNoMatch,
		Message: i18n.T(goshape.CodeUnionNoMatch, nil),
		Hint:    "tried: " + strings.Join(tried, ", "),
		Params:  map[string]any{"tried": tried},
	}}
}

func (u *Union) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{OneOf: make([]*js.Schema, 0, len(u.members))}
	for _, m := range u.members {
		ms, err := m.shape.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, ms)
	}
	return out, nil
}

// Classify determines which member a validated value belongs to.
//
// Precondition: v was produced by validating against exactly this union.
// Classifying a zero token or a value validated against a different shape is
// a programmer error and panics with *goshape.UsageError.
//
// Discriminator unions read the tag field directly. Structural unions re-test
// members in declaration order; the earliest full match wins, mirroring
// Parse.
func (u *Union) Classify(ctx context.Context, v goshape.Validated) Tag {
	if v.Shape() != goshape.Shape(u) {
		panic(&goshape.UsageError{Op: "shape.Union.Classify", Detail: "value was not validated against this union"})
	}
	if u.discriminator != "" {
		m := v.Object()
		tag, _ := m[u.discriminator].(string)
		if _, known := u.index[Tag(tag)]; !known {
			panic(&goshape.UsageError{Op: "shape.Union.Classify", Detail: "validated value lost its discriminator"})
		}
		return Tag(tag)
	}
	for _, m := range u.members {
		if _, err := m.shape.Parse(descend(ctx), v.Value()); err == nil {
			return m.tag
		}
	}
	panic(&goshape.UsageError{Op: "shape.Union.Classify", Detail: "validated value matches no member"})
}

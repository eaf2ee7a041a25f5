package goshape

import (
	"strconv"
	"strings"
)

// Validated is a proof token: a value that has been checked against a Shape
// by the engine. It is opaque and immutable; callers cannot construct one
// with content, so holding a non-zero Validated means Validate ran and
// succeeded. Objects inside are pruned to their declared fields.
type Validated struct {
	value any
	shape Shape
}

// Value returns the canonical validated value.
func (d Validated) Value() any { return d.value }

// Shape returns the descriptor the value was checked against.
func (d Validated) Shape() Shape { return d.shape }

// IsZero reports whether d is the zero token (no validation has occurred).
func (d Validated) IsZero() bool { return d.shape == nil }

// Object returns the validated value as an object, or nil when the value is
// not an object. Handlers narrowed by a union member use this for field
// access.
func (d Validated) Object() map[string]any {
	m, _ := d.value.(map[string]any)
	return m
}

// Presence is the bit flag collected by WithMeta APIs.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                      // Field value was null.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the proof token along with presence metadata.
type Decoded struct {
	Validated
	Presence PresenceMap
}

func applyPresenceOptions(pm PresenceMap, popt PresenceOpt) PresenceMap {
	if pm == nil || !popt.Collect {
		return nil
	}
	filtered := make(PresenceMap, len(pm))
	shouldInclude := func(path string) bool {
		if len(popt.Include) > 0 {
			ok := false
			for _, p := range popt.Include {
				if strings.HasPrefix(path, p) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
		for _, p := range popt.Exclude {
			if strings.HasPrefix(path, p) {
				return false
			}
		}
		return true
	}
	for k, v := range pm {
		if !shouldInclude(k) {
			continue
		}
		filtered[k] = v
	}
	return filtered
}

// collectPresenceMapFromValue walks a validated value and collects JSON
// Pointer paths for objects (map[string]any) and arrays ([]any). Root path
// "/" is always marked seen.
func collectPresenceMapFromValue(v any) PresenceMap {
	pm := make(PresenceMap)
	pm["/"] = PresenceSeen
	collectPresenceRecurse(v, "", pm)
	return pm
}

func collectPresenceRecurse(v any, cur string, pm PresenceMap) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			p := cur + "/" + EscapePointerToken(k)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	case []any:
		for i, val := range t {
			p := cur + "/" + strconv.Itoa(i)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	default:
		// primitives: nothing to descend
	}
}

// Package goshape provides:
//
// - Structural validation of dynamically-shaped input against immutable
//   shape descriptors (Validate/ValidateFrom)
// - A stable failure model via Issues (JSON Pointer, code, message)
// - An opaque Validated proof token constructible only by the engine
// - Tagged-union classification and exhaustive variant dispatch under shape/
// - Streaming input via Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations
//   under internal/.
// - Place descriptor builders under shape/, input drivers under source/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	msg := buildMessageShape()
//	v, err := goshape.ValidateFrom(ctx, msg, goshape.JSONBytes(data))
//	tag := messages.Classify(ctx, v)
//	out, err := renderer.Dispatch(ctx, v)
package goshape

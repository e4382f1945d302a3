package helpers

import "reflect"

// Constructors guard their required dependencies with these helpers so a wiring mistake fails at startup with
// a message naming the file and the dependency, e.g. "service.router.go: matcher is required".

// StrPanic returns s, or panics with panicMessage when s is "". Whitespace is not trimmed. Accepts any
// string-based type, so domain.ServiceName needs no conversion.
func StrPanic[S ~string](s S, panicMessage string) S {
	if len(s) == 0 {
		panic(panicMessage)
	}
	return s
}

// NilPanic returns v, or panics with panicMessage when v is nil. Typed nils count: a nil *T, map, slice,
// chan or func stored in an interface panics too. Struct and scalar values never panic.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

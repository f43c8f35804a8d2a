package placeholder

// bind injects named constants into a compiled expression: given a raw
// callable that resolves free variables dynamically and a mapping of
// names to values, it returns an equivalent callable with those free
// variables bound to the supplied values.
//
// Binding is by reference. The mapping and the values it holds are
// captured as they are, so mutating a captured mutable value after
// compilation is visible to later invocations.
func bind(raw rawFunc, constants map[string]any) Func {
	return func(args ...any) (any, error) {
		return raw(constants, args...)
	}
}

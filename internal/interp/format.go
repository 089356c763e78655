package interp

// Show renders a value for user-facing output. Strings print raw, without
// quoting, so print and write_summary produce literal text; every other
// value uses its Inspect form.
func Show(val Object) string {
	if s, ok := val.(*String); ok {
		return s.Value
	}
	return val.Inspect()
}

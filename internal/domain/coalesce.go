package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrFromPtrWithDefault returns the first non-nil *string value, or the fallback.
func StrFromPtrWithDefault(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// CloneStrings copies a string slice, keeping nil as nil.
func CloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// NonNilStrings returns in, or an empty slice when in is nil.
func NonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

package util

// Truncate returns the first n characters of s. Characters are counted as
// runes so multi-byte letters (ä, ö, ü, ß) are never cut in half.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	if len(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}

	return s
}

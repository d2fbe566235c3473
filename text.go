package docchat

// DefaultMaxChars is the default cap on the length of a stored passage.
const DefaultMaxChars = 4000

// Truncate returns the first n characters of s. Characters are Unicode code
// points, so multi-byte text is never cut in the middle of a rune.
// A non-positive n disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
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

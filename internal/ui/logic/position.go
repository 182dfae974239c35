package logic

import "fmt"

// Next returns the index after i, wrapping to 0 past the end.
// With no items the index is returned unchanged.
func Next(i, n int) int {
	if n <= 0 {
		return i
	}
	return (i + 1) % n
}

// Previous returns the index before i, wrapping to the last item.
// With no items the index is returned unchanged.
func Previous(i, n int) int {
	if n <= 0 {
		return i
	}
	return (i - 1 + n) % n
}

// Clamp pulls a possibly stale index back into [0, n).
// It returns 0 for an empty list.
func Clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// FormatPosition renders a zero-based index as "i+1 of n"
func FormatPosition(i, n int) string {
	return fmt.Sprintf("%d of %d", i+1, n)
}

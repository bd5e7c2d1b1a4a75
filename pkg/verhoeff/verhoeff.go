// Package verhoeff implements the Verhoeff check-digit algorithm used to
// validate 12-digit national identity numbers. The algorithm is a pure
// table-driven automaton over the dihedral group D5 and detects all
// single-digit errors and adjacent transpositions.
package verhoeff

// d is the multiplication table of the dihedral group D5.
var d = [10][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
	{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
	{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
	{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
	{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
	{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
	{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
	{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
}

// p is the permutation table, applied cyclically with period 8.
var p = [8][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
	{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
	{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
	{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
	{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
	{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
	{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
}

// inv maps each digit to its multiplicative inverse in D5.
var inv = [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}

// Validate reports whether num, a numeric string that includes its trailing
// check digit, passes the Verhoeff check. The digits are processed from last
// to first; the number is valid iff the checksum accumulator ends at zero.
// Any non-digit character makes the input invalid.
func Validate(num string) bool {
	if num == "" {
		return false
	}

	c := 0
	for i := 0; i < len(num); i++ {
		ch := num[len(num)-1-i]
		if ch < '0' || ch > '9' {
			return false
		}
		c = d[c][p[i%8][ch-'0']]
	}
	return c == 0
}

// CheckDigit computes the Verhoeff check digit for the given numeric payload
// (the number without its check digit). Appending the returned digit to the
// payload yields a string that Validate accepts.
func CheckDigit(num string) (int, bool) {
	c := 0
	for i := 0; i < len(num); i++ {
		ch := num[len(num)-1-i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		c = d[c][p[(i+1)%8][ch-'0']]
	}
	return inv[c], true
}

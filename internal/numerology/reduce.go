// Package numerology derives numerology numbers from birth dates and names.
//
// Every function is pure: the same inputs always produce the same numbers,
// and nothing is read from or written to storage.
package numerology

import "strconv"

// Master numbers survive reduction when preservation is requested.
const (
	Master11 = 11
	Master22 = 22
	Master33 = 33
)

// ReduceToSingleDigit sums the decimal digits of n until a single digit remains.
//
// When preserveMaster is set, an intermediate value whose decimal form is
// exactly "11", "22" or "33" is returned as is. The check is textual: it only
// fires when a sum lands exactly on a master number.
//
// Negative input is reduced on its absolute value.
func ReduceToSingleDigit(n int, preserveMaster bool) int {
	if n < 0 {
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) == 1 {
		return n
	}
	if preserveMaster && (s == "11" || s == "22" || s == "33") {
		return n
	}
	return ReduceToSingleDigit(DigitSum(n), preserveMaster)
}

// Reduce is ReduceToSingleDigit with master numbers preserved.
func Reduce(n int) int {
	return ReduceToSingleDigit(n, true)
}

// DigitSum returns the sum of the decimal digits of n (absolute value).
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// IsMasterNumber reports whether n is 11, 22 or 33.
func IsMasterNumber(n int) bool {
	return n == Master11 || n == Master22 || n == Master33
}

// IsValidNumber reports whether n is in {1..9, 11, 22, 33}.
func IsValidNumber(n int) bool {
	return (n >= 1 && n <= 9) || IsMasterNumber(n)
}

// Package cellref converts spreadsheet column letters ("A", "Z", "AB") to
// zero-based column indices.
package cellref

// ColumnIndex returns the zero-based column index for a run of uppercase
// column letters: "A" → 0, "Z" → 25, "AA" → 26, "AB" → 27.
//
// The encoding is base 26 with digits 1–26 ('A'=1 … 'Z'=26), most
// significant letter first, minus one for zero-basing.  The input must
// already be known to consist only of 'A'–'Z'; callers extract it from a
// cell address that matched the [A-Z]+[0-9]+ pattern, so no validation is
// performed here.
func ColumnIndex(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		n = n*26 + int(letters[i]-'A') + 1
	}
	return n - 1
}

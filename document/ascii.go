package document

import "strings"

var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "C",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
	"ö", "o", "Ö", "O",
	"ş", "s", "Ş", "S",
	"ü", "u", "Ü", "U",
	"★", "*", "☆", "-",
)

// ToASCII folds Turkish letters and rating stars to ASCII; cp1252 has no glyphs for most of them.
func ToASCII(s string) string {
	return turkishFold.Replace(s)
}

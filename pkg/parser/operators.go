package parser

// Accepted spellings for each connective. Order matters only when one
// spelling is a prefix of another, which none of these are.
var (
	andOperators   = []string{`/\`, "∧", "&"}
	orOperators    = []string{`\/`, "∨", "||"}
	arrowOperators = []string{"->", "→"}
	notOperators   = []string{"~", "¬", "!"}
)

// Operators lists the accepted spellings per connective, keyed by the
// canonical glyph. Used for help text and completion.
func Operators() map[string][]string {
	return map[string][]string{
		"∧": append([]string(nil), andOperators...),
		"∨": append([]string(nil), orOperators...),
		"→": append([]string(nil), arrowOperators...),
		"¬": append([]string(nil), notOperators...),
	}
}

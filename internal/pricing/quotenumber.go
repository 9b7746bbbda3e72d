package pricing

import (
	"math/rand/v2"
	"strings"
	"time"
)

// DefaultQuotePrefix starts every quote reference unless configured otherwise.
const DefaultQuotePrefix = "BLS-WD"

const quoteSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// QuoteNumberer builds references like BLS-WD-250226-A3X. They are for people
// to read back over the phone, not keys: two quotes on the same day can collide.
type QuoteNumberer struct {
	Prefix string
	Now    func() time.Time
	Rand   *rand.Rand
}

// Next returns a new reference using the current date and three random characters.
func (n QuoteNumberer) Next() string {
	prefix := n.Prefix
	if prefix == "" {
		prefix = DefaultQuotePrefix
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	intn := rand.IntN
	if n.Rand != nil {
		intn = n.Rand.IntN
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('-')
	sb.WriteString(now().Format("060102"))
	sb.WriteByte('-')
	for i := 0; i < 3; i++ {
		sb.WriteByte(quoteSuffixAlphabet[intn(len(quoteSuffixAlphabet))])
	}
	return sb.String()
}

// GenerateQuoteNumber returns a reference with the default prefix.
func GenerateQuoteNumber() string {
	return QuoteNumberer{}.Next()
}

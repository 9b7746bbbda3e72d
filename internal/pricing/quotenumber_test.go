package pricing

import (
	"math/rand/v2"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var quoteNumberPattern = regexp.MustCompile(`^BLS-WD-\d{6}-[A-Z0-9]{3}$`)

func TestGenerateQuoteNumberFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		n := GenerateQuoteNumber()
		assert.Regexp(t, quoteNumberPattern, n)
	}
}

func TestQuoteNumbererUsesDateAndPrefix(t *testing.T) {
	n := QuoteNumberer{
		Prefix: "ACME",
		Now:    func() time.Time { return time.Date(2025, time.February, 26, 9, 0, 0, 0, time.UTC) },
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}

	got := n.Next()
	assert.Regexp(t, `^ACME-250226-[A-Z0-9]{3}$`, got)
}

func TestQuoteNumbersDifferAcrossCalls(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[GenerateQuoteNumber()] = struct{}{}
	}
	// 36^3 suffixes; twenty draws landing on one or two values would mean no randomness.
	assert.Greater(t, len(seen), 2)
}

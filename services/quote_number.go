package services

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// QuotePrefix is the organization code carried by every new quotation id.
// Quotations created before the rebrand use LegacyQuotePrefix; both must
// be recognized when recomputing the sequence counter.
const (
	QuotePrefix       = "KAPL"
	LegacyQuotePrefix = "KON"
)

// firstSequence is the floor for the quotation counter: an empty
// install issues KAPL-1001 first.
const firstSequence = 1000

var quoteSeqPattern = regexp.MustCompile(`^(?:` + QuotePrefix + `|` + LegacyQuotePrefix + `)-(\d+)`)

// GenerateQuoteID builds a quotation id in the form
// "KAPL-{sequence}/{MM}-{YY}" from the sequence counter and the
// creation time.
func GenerateQuoteID(sequence int, now time.Time) string {
	return fmt.Sprintf("%s-%d/%02d-%02d", QuotePrefix, sequence, int(now.Month()), now.Year()%100)
}

// ExtractSequence pulls the numeric sequence out of a quotation id,
// accepting both the current and the legacy prefix. It returns false
// for ids that do not match the known grammar.
func ExtractSequence(id string) (int, bool) {
	m := quoteSeqPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextSequence recomputes the id counter from the loaded quotation
// collection: one past the highest sequence found, or 1001 when no id
// matches. Deriving instead of storing keeps the counter correct after
// out-of-band deletions.
func NextSequence(quotations []Quotation) int {
	maxSeq := firstSequence
	for _, q := range quotations {
		if n, ok := ExtractSequence(q.ID); ok && n > maxSeq {
			maxSeq = n
		}
	}
	return maxSeq + 1
}

// internal/ledger/history.go
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rendered line shape: "DD/MM/YYYY HH:MM | <label> <amount> | +N pts".
// Older records omit the year in the timestamp.
const (
	lineTimeLayout       = "02/01/2006 15:04"
	legacyLineTimeLayout = "02/01 15:04"

	// MarkerPurchase and MarkerRedemption classify a line by substring
	// match; there is no structured kind field inside the text.
	MarkerPurchase   = "Compra"
	MarkerRedemption = "Resgate"
)

var (
	ErrNotPurchase   = errors.New("line is not a purchase entry")
	ErrMalformedLine = errors.New("malformed history line")
)

// FormatEuros renders a purchase amount the way history lines carry it.
func FormatEuros(amount decimal.Decimal) string {
	return amount.String() + "€"
}

// FormatLine renders a single history line. Pipes and newlines inside
// label or amountText are not escaped and will corrupt later parsing;
// callers own keeping those out.
func FormatLine(ts time.Time, label, amountText string, pointsDelta int64) string {
	sign := "+"
	delta := pointsDelta
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return fmt.Sprintf("%s | %s %s | %s%d pts", ts.Format(lineTimeLayout), label, amountText, sign, delta)
}

// AppendTransaction prepends a rendered transaction line to the history
// blob. Newest line always comes first.
func AppendTransaction(history string, ts time.Time, label, amountText string, pointsDelta int64) string {
	line := FormatLine(ts, label, amountText, pointsDelta)
	if history == "" {
		return line
	}
	return line + "\n" + history
}

// Purchase is one successfully parsed purchase line.
type Purchase struct {
	When   time.Time
	Amount decimal.Decimal
}

// ParsePurchase extracts the timestamp and euro amount from a rendered
// purchase line. Year-less legacy timestamps are assumed to be from
// now's year. Any failure means the caller should skip the line and
// keep going.
func ParsePurchase(line string, now time.Time) (Purchase, error) {
	if !strings.Contains(line, MarkerPurchase) {
		return Purchase{}, ErrNotPurchase
	}

	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return Purchase{}, ErrMalformedLine
	}

	amountText := strings.Replace(parts[1], MarkerPurchase, "", 1)
	amountText = strings.ReplaceAll(amountText, "€", "")
	amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
	if err != nil {
		return Purchase{}, fmt.Errorf("%w: bad amount: %v", ErrMalformedLine, err)
	}

	when, err := parseLineTime(strings.TrimSpace(parts[0]), now)
	if err != nil {
		return Purchase{}, err
	}

	return Purchase{When: when, Amount: amount}, nil
}

func parseLineTime(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(lineTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyLineTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, s)
	}
	// Legacy lines carry no year; anything older than a year gets
	// mis-attributed to the current one. Preserved as-is.
	return time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()), nil
}

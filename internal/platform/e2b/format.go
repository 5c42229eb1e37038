package e2b

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// Layouts accepted for caller-supplied dates. Zoneless layouts are parsed in
// local time so the rendered calendar date matches what the caller typed.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	dateTimeLayout,
	dateLayout,
}

// FormatDate renders v as a CCYYMMDD date in local time. Empty or
// unparseable input yields the empty string; formatting never fails.
func FormatDate(v any) string {
	t, ok := parseInput(v)
	if !ok {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatDateTime renders v as a CCYYMMDDHHMMSS timestamp in local time.
// Empty or unparseable input yields the empty string.
func FormatDateTime(v any) string {
	t, ok := parseInput(v)
	if !ok {
		return ""
	}
	return t.Format(dateTimeLayout)
}

func parseInput(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.Local(), true
	case Text:
		return parseDateString(string(t))
	case string:
		return parseDateString(t)
	default:
		return parseDateString(stringify(v))
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Local(), true
		}
	}
	return time.Time{}, false
}

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText stringifies v and escapes the five XML markup characters.
// A nil value yields the empty string; a numeric zero yields "0".
func EscapeText(v any) string {
	return markupEscaper.Replace(stringify(v))
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case Text:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

var caseIDMu sync.Mutex
var lastCaseStamp int64

// NewCaseID derives a sender case identifier of the form
// COUNTRY-COMPANY-TIMESTAMP. The country segment is uppercased, hyphens in
// the company segment are rewritten to underscores so the identifier keeps
// exactly three segments, and the millisecond stamp is bumped when two calls
// land on the same tick so identifiers stay unique within a process.
func NewCaseID(country, company string) string {
	if country == "" {
		country = DefaultCountry
	}
	if company == "" {
		company = DefaultCompanySegment
	}
	company = strings.ReplaceAll(company, "-", "_")

	caseIDMu.Lock()
	stamp := time.Now().UnixMilli()
	if stamp <= lastCaseStamp {
		stamp = lastCaseStamp + 1
	}
	lastCaseStamp = stamp
	caseIDMu.Unlock()

	return fmt.Sprintf("%s-%s-%d", strings.ToUpper(country), company, stamp)
}

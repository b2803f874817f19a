package scrape

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sosodev/duration"
	"golang.org/x/text/unicode/norm"
)

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	blockEndRe = regexp.MustCompile(`(?i)<br\s*/?>|</(p|li|div|h[1-6])>`)
	numberRe   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// cleanText unescapes entities, collapses whitespace and applies NFC so that
// composed and decomposed accents compare equal.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return norm.NFC.String(s)
}

// stripTags keeps the text of an HTML fragment, one line per block element.
func stripTags(fragment string) string {
	fragment = blockEndRe.ReplaceAllStringFunc(fragment, func(m string) string { return m + "\n" })
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}

// maxMinutes bounds parsed durations so that absurd values such as
// P99999999999999999999D are rejected instead of overflowing.
const maxMinutes = 1<<31 - 1

// parseDurationMinutes reads an ISO-8601 duration such as PT1H30M. A bare
// number is taken as minutes. Years and months count as 365 and 30 days.
func parseDurationMinutes(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if numberRe.MatchString(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return boundedMinutes(f)
	}
	if s == "P" || s == "PT" || strings.HasSuffix(s, "T") {
		return 0, false
	}
	d, err := duration.Parse(s)
	if err != nil || d.Negative {
		return 0, false
	}
	days := d.Years*365 + d.Months*30 + d.Weeks*7 + d.Days
	return boundedMinutes((days*24+d.Hours)*60 + d.Minutes + d.Seconds/60)
}

func boundedMinutes(f float64) (int, bool) {
	if math.IsNaN(f) || f < 0 || f > maxMinutes {
		return 0, false
	}
	return int(math.Round(f)), true
}

// recipeMinutes prefers totalTime and falls back to prepTime + cookTime.
func recipeMinutes(total, prep, cook string) (int, bool) {
	if n, ok := parseDurationMinutes(total); ok && n > 0 {
		return n, true
	}
	p, okP := parseDurationMinutes(prep)
	c, okC := parseDurationMinutes(cook)
	if !okP && !okC {
		return 0, false
	}
	return p + c, true
}

// formatYields mirrors what recipe sites show: a bare count becomes
// "N servings", text is kept.
func formatYields(v any) string {
	var s string
	switch val := v.(type) {
	case float64:
		s = formatNumber(val)
	case []any:
		// ["4", "4 servings"]: prefer the most descriptive entry
		for _, item := range val {
			cand := cleanText(stringValue(item))
			if cand == "" {
				continue
			}
			if s == "" || (numberRe.MatchString(s) && !numberRe.MatchString(cand)) {
				s = cand
			}
		}
	default:
		s = stringValue(val)
	}
	s = cleanText(s)
	if !numberRe.MatchString(s) {
		return s
	}
	if s == "1" {
		return "1 serving"
	}
	return s + " servings"
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

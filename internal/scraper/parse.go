package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/guttosm/b3proventos/internal/domain/models"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// providerDateLayout is the DD/MM/YYYY format used on the provider pages.
// Single digit day or month is accepted.
const providerDateLayout = "2/1/2006"

var (
	labelStrip    = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Zs}]`)
	labelCollapse = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// ParseLocaleDecimal parses a pt-BR formatted number ("1.234,56").
// Every "." is a thousands separator and "," is the decimal separator.
func ParseLocaleDecimal(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q", s)
	}
	return d, nil
}

// NormalizeLabel turns a details-page label into a map key:
// punctuation is removed (any Unicode letter or digit kept), whitespace runs become
// a single underscore and the result is upper-cased.
//
//	"Dív. Líquida / PL" → "DÍV_LÍQUIDA_PL"
func NormalizeLabel(raw string) string {
	label := strings.TrimSpace(labelStrip.ReplaceAllString(raw, ""))
	label = labelCollapse.ReplaceAllString(label, "_")
	return strings.ToUpper(label)
}

// parseProviderDate converts DD/MM/YYYY into an ISO date. ok is false when
// the cell is not a valid date.
func parseProviderDate(s string) (iso string, ok bool) {
	t, err := time.Parse(providerDateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(models.ISODateLayout), true
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

// strippedText concatenates every text node below the selection, each one
// trimmed, with no separator. Empty nodes are skipped.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}

// RowIssue records a table row dropped during extraction.
type RowIssue struct {
	Table  string   // table id
	Row    int      // 1-based position in the table body
	Reason string   // parse failure
	Cells  []string // raw cell text, for diagnostics
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, strippedText(c))
	})
	return out
}

package scraper

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/datoactivo/backend/internal/contracts"
)

var (
	outcomeRe = regexp.MustCompile(`^(\$|\d+)\s+(.+)$`)
	digitsRe  = regexp.MustCompile(`\d+`)
	slotRe    = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M)`)
)

// nameCorrections fixes misspellings the source site is known to publish.
var nameCorrections = map[string]string{
	"GIEMPIESS": "CIEMPIES",
	"CIEMPIESS": "CIEMPIES",
}

// draw is one (slot, outcome) parsed from a result card.
type draw struct {
	Slot    string
	Outcome string
}

// parseDay extracts the day's draws from a results page. Cards that are
// malformed or still pending are skipped, never fatal.
func parseDay(body io.Reader) ([]draw, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	container := doc.Find("div.js-con").First()
	if container.Length() == 0 {
		container = doc.Find("div.container").First()
	}
	if container.Length() == 0 {
		return nil, errNoContainer
	}

	cards := findCards(container, true)
	if len(cards) == 0 {
		cards = findCards(container, false)
	}

	var draws []draw
	for _, card := range cards {
		if d, ok := parseCard(card); ok {
			draws = append(draws, d)
		}
	}
	return draws, nil
}

// findCards collects the container's result cards: divs whose class carries a
// grid column. The strict pass also requires a margin class, which filters out
// layout-only columns.
func findCards(container *goquery.Selection, strict bool) []*goquery.Selection {
	var cards []*goquery.Selection
	container.Find("div").Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		if !strings.Contains(class, "col-") {
			return
		}
		if strict && !strings.Contains(class, "mb-") {
			return
		}
		cards = append(cards, sel)
	})
	return cards
}

// parseCard reads one result card: a heading like "32 ARDILLA" plus a time
// label like "09:00 AM".
func parseCard(card *goquery.Selection) (draw, bool) {
	heading := card.Find("h4").First()
	if heading.Length() == 0 {
		heading = card.Find("h3").First()
	}
	if heading.Length() == 0 {
		heading = card.Find("h2").First()
	}
	if heading.Length() == 0 {
		return draw{}, false
	}

	text := strings.TrimSpace(heading.Text())
	if text == "" || text == "@" {
		return draw{}, false
	}

	outcome := ""
	if m := outcomeRe.FindStringSubmatch(text); m != nil {
		number := strings.TrimSpace(strings.ReplaceAll(m[1], "$", ""))
		name := strings.ToUpper(strings.TrimSpace(m[2]))
		if fixed, ok := nameCorrections[name]; ok {
			name = fixed
		}
		outcome = resolveCode(name, number)
	} else if nums := digitsRe.FindString(text); nums != "" {
		outcome = nums
	}
	if outcome == "" {
		return draw{}, false
	}

	timeEl := card.Find("h5").First()
	if timeEl.Length() == 0 {
		timeEl = card.Find("h4").First()
	}
	if timeEl.Length() == 0 {
		return draw{}, false
	}
	m := slotRe.FindStringSubmatch(timeEl.Text())
	if m == nil {
		return draw{}, false
	}
	slot := strings.ToUpper(strings.ReplaceAll(m[1], " ", ""))

	return draw{Slot: slot, Outcome: outcome}, true
}

// resolveCode maps a scraped (name, number) to the canonical outcome code.
// The published number wins when it agrees with the name; otherwise the name
// decides, since the site occasionally shifts numbers between cards.
func resolveCode(name, number string) string {
	if contracts.OutcomeName(number) == name {
		return number
	}
	for code, known := range contracts.Outcomes {
		if strings.EqualFold(known, name) {
			return code
		}
	}
	return number
}

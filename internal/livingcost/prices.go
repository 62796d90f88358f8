package livingcost

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Item identifies one scraped price.
type Item string

const (
	// Rent is a one-bedroom apartment outside the centre.
	Rent Item = "rent"
	// Meal is a meal at an inexpensive restaurant.
	Meal Item = "meal"
	// Transport is a monthly public transport pass.
	Transport Item = "transport"
	// Utilities are basic utilities for an apartment.
	Utilities Item = "utilities"
	// Internet is a monthly internet plan.
	Internet Item = "internet"
	// Gym is a monthly fitness club fee.
	Gym Item = "gym"
)

// Items lists every price an estimate needs.
var Items = []Item{Rent, Meal, Transport, Utilities, Internet, Gym}

// Prices maps items to EUR amounts.
type Prices map[Item]float64

// Complete reports whether every item has a price.
func (p Prices) Complete() bool {
	for _, it := range Items {
		if _, ok := p[it]; !ok {
			return false
		}
	}
	return true
}

// fill returns p with missing items taken from defaults.
func (p Prices) fill(defaults Prices) Prices {
	out := make(Prices, len(Items))
	for _, it := range Items {
		if v, ok := p[it]; ok {
			out[it] = v
			continue
		}
		out[it] = defaults[it]
	}
	return out
}

// labels maps Numbeo row labels to items. The first matching rule wins.
var labels = []struct {
	item Item
	all  []string
}{
	{Rent, []string{"apartment (1 bedroom) outside of centre"}},
	{Meal, []string{"meal, inexpensive restaurant"}},
	{Transport, []string{"monthly pass"}},
	{Internet, []string{"internet"}},
	{Utilities, []string{"utilities", "basic"}},
	{Gym, []string{"fitness club"}},
}

// ParseNumbeo reads the prices of a Numbeo cost of living page.
// Rows that do not hold exactly a label and a number are ignored.
func ParseNumbeo(markup string) (Prices, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse numbeo page: %w", err)
	}

	prices := make(Prices)
	doc.Find("table.data_wide_table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		price, ok := parsePrice(cells.Eq(1).Text())
		if !ok {
			return
		}
		if it, ok := itemFor(label); ok {
			prices[it] = price
		}
	})
	return prices, nil
}

func itemFor(label string) (Item, bool) {
	for _, l := range labels {
		matched := true
		for _, s := range l.all {
			if !strings.Contains(label, s) {
				matched = false
				break
			}
		}
		if matched {
			return l.item, true
		}
	}
	return "", false
}

func parsePrice(s string) (float64, bool) {
	s = strings.NewReplacer("€", "", ",", "", "\u00a0", "", " ", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

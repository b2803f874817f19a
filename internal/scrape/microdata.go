package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func fromMicrodata(doc *goquery.Document) (*Recipe, bool) {
	scope := doc.Find(`[itemscope][itemtype]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, t := range strings.Fields(s.AttrOr("itemtype", "")) {
			if typeMatches(t, "Recipe") {
				return true
			}
		}
		return false
	}).First()
	if scope.Length() == 0 {
		return nil, false
	}

	r := &Recipe{
		title:        cleanText(itemValue(props(scope, "name").First())),
		image:        imageValue(props(scope, "image").First()),
		yields:       formatYields(itemValue(props(scope, "recipeYield").First())),
		canonicalURL: itemValue(props(scope, "url").First()),
		source:       "microdata",
	}
	r.totalTime, r.hasTime = recipeMinutes(
		itemValue(props(scope, "totalTime").First()),
		itemValue(props(scope, "prepTime").First()),
		itemValue(props(scope, "cookTime").First()),
	)

	props(scope, "recipeIngredient").AddSelection(props(scope, "ingredients")).Each(func(_ int, s *goquery.Selection) {
		if t := cleanText(itemValue(s)); t != "" {
			r.ingredients = append(r.ingredients, t)
		}
	})

	props(scope, "recipeInstructions").Each(func(_ int, s *goquery.Selection) {
		items := s.Find("li")
		if items.Length() == 0 {
			items = s.Find(`[itemprop="text"]`)
		}
		if items.Length() == 0 {
			r.instructions = append(r.instructions, splitInstructionText(innerHTML(s))...)
			return
		}
		items.Each(func(_ int, li *goquery.Selection) {
			if t := cleanText(li.Text()); t != "" {
				r.instructions = append(r.instructions, t)
			}
		})
	})
	return r, true
}

// props returns elements carrying property name that belong to scope itself
// rather than to an item nested inside it.
func props(scope *goquery.Selection, name string) *goquery.Selection {
	owner := scope.Get(0)
	return scope.Find(`[itemprop~="` + name + `"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		closest := s.Parent().Closest("[itemscope]")
		return closest.Length() > 0 && closest.Get(0) == owner
	})
}

// imageValue handles both a plain image property and an ImageObject item.
func imageValue(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if _, nested := s.Attr("itemscope"); nested {
		if u := itemValue(props(s, "url").First()); u != "" {
			return u
		}
		if u := itemValue(props(s, "contentUrl").First()); u != "" {
			return u
		}
		return strings.TrimSpace(s.Find("img").First().AttrOr("src", ""))
	}
	return itemValue(s)
}

// itemValue reads a microdata property value as HTML defines it:
// content, then URL-ish attributes, then text.
func itemValue(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	if v, ok := s.Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	switch goquery.NodeName(s) {
	case "img", "source", "audio", "video":
		return strings.TrimSpace(s.AttrOr("src", ""))
	case "a", "link", "area":
		return strings.TrimSpace(s.AttrOr("href", ""))
	case "time":
		if v, ok := s.Attr("datetime"); ok {
			return strings.TrimSpace(v)
		}
	case "meta":
		return ""
	}
	return strings.TrimSpace(s.Text())
}

func innerHTML(s *goquery.Selection) string {
	h, err := s.Html()
	if err != nil {
		return s.Text()
	}
	return h
}

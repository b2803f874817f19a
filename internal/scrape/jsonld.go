package scrape

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func fromJSONLD(doc *goquery.Document) (*Recipe, bool) {
	var found *Recipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		block := normalizeJSONBlock(s.Text())
		if block == "" {
			return true
		}
		var payload any
		if err := json.Unmarshal([]byte(block), &payload); err != nil {
			return true
		}
		if m, ok := findRecipeNode(payload); ok {
			found = decodeRecipeNode(m)
			return false
		}
		return true
	})
	return found, found != nil
}

// normalizeJSONBlock strips HTML comment and CDATA wrappers some CMSes put
// around JSON-LD.
func normalizeJSONBlock(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "<!--")
	content = strings.TrimSuffix(content, "-->")
	content = strings.TrimPrefix(content, "//<![CDATA[")
	content = strings.TrimSuffix(content, "//]]>")
	content = strings.TrimSpace(content)
	start := strings.IndexAny(content, "{[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndexAny(content, "}]")
	if end == -1 || end < start {
		return ""
	}
	return content[start : end+1]
}

// findRecipeNode walks arrays, @graph containers and nested objects and
// returns the first node typed Recipe.
func findRecipeNode(data any) (map[string]any, bool) {
	switch v := data.(type) {
	case map[string]any:
		if hasType(v, "Recipe") {
			return v, true
		}
		if graph, ok := v["@graph"]; ok {
			if m, ok := findRecipeNode(graph); ok {
				return m, true
			}
		}
		// e.g. WebPage.mainEntity; keys sorted so the pick is stable
		keys := make([]string, 0, len(v))
		for key := range v {
			if key != "@graph" {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			if m, ok := findRecipeNode(v[key]); ok {
				return m, true
			}
		}
	case []any:
		for _, item := range v {
			if m, ok := findRecipeNode(item); ok {
				return m, true
			}
		}
	}
	return nil, false
}

func hasType(m map[string]any, want string) bool {
	switch t := m["@type"].(type) {
	case string:
		return typeMatches(t, want)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && typeMatches(s, want) {
				return true
			}
		}
	}
	return false
}

func typeMatches(t, want string) bool {
	t = strings.TrimPrefix(t, "http://schema.org/")
	t = strings.TrimPrefix(t, "https://schema.org/")
	t = strings.TrimPrefix(t, "schema:")
	return strings.EqualFold(t, want)
}

func decodeRecipeNode(m map[string]any) *Recipe {
	r := &Recipe{
		title:        cleanText(stringValue(m["name"])),
		image:        firstImage(m["image"]),
		yields:       formatYields(m["recipeYield"]),
		ingredients:  ingredientList(m),
		instructions: instructionList(m["recipeInstructions"]),
		canonicalURL: stringValue(m["url"]),
		source:       "json-ld",
	}
	if r.title == "" {
		r.title = cleanText(stringValue(m["headline"]))
	}
	r.totalTime, r.hasTime = recipeMinutes(
		stringValue(m["totalTime"]),
		stringValue(m["prepTime"]),
		stringValue(m["cookTime"]),
	)
	return r
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatNumber(val)
	case bool:
		return fmt.Sprintf("%t", val)
	case []any:
		for _, item := range val {
			if s := stringValue(item); s != "" {
				return s
			}
		}
	case map[string]any:
		for _, key := range []string{"@value", "text", "name"} {
			if s := stringValue(val[key]); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstImage(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if u := stringValue(val["url"]); u != "" {
			return strings.TrimSpace(u)
		}
		if u := stringValue(val["contentUrl"]); u != "" {
			return strings.TrimSpace(u)
		}
		if u := stringValue(val["@id"]); u != "" && strings.HasPrefix(u, "http") {
			return strings.TrimSpace(u)
		}
	case []any:
		for _, item := range val {
			if u := firstImage(item); u != "" {
				return u
			}
		}
	}
	return ""
}

func ingredientList(m map[string]any) []string {
	raw, ok := m["recipeIngredient"]
	if !ok {
		// pre-2015 schema.org name
		raw = m["ingredients"]
	}
	var out []string
	switch val := raw.(type) {
	case string:
		for _, line := range strings.Split(val, "\n") {
			if s := cleanText(line); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range val {
			if s := cleanText(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func instructionList(v any) []string {
	var out []string
	switch val := v.(type) {
	case string:
		out = append(out, splitInstructionText(val)...)
	case []any:
		for _, item := range val {
			out = append(out, instructionList(item)...)
		}
	case map[string]any:
		if hasType(val, "HowToSection") || val["itemListElement"] != nil {
			return instructionList(val["itemListElement"])
		}
		text := stringValue(val["text"])
		if text == "" {
			text = stringValue(val["name"])
		}
		out = append(out, splitInstructionText(text)...)
	}
	return out
}

// splitInstructionText turns one instruction blob into steps, one per line.
func splitInstructionText(s string) []string {
	if strings.Contains(s, "<") {
		s = stripTags(s)
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := cleanText(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

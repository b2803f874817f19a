package scrape

import (
	"bytes"
	"net/url"

	"github.com/dyatlov/go-opengraph/opengraph"
	readability "github.com/go-shiori/go-readability"
)

// fillFromMetadata completes a missing title or image from OpenGraph tags,
// then from readability's article metadata.
func fillFromMetadata(r *Recipe, page []byte, base *url.URL) {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(page)); err == nil {
		if r.title == "" {
			r.title = cleanText(og.Title)
		}
		if r.image == "" {
			for _, img := range og.Images {
				if img != nil && img.URL != "" {
					r.image = img.URL
					break
				}
			}
		}
	}
	if r.title != "" && r.image != "" {
		return
	}
	article, err := readability.FromReader(bytes.NewReader(page), base)
	if err != nil {
		return
	}
	if r.title == "" {
		r.title = cleanText(article.Title)
	}
	if r.image == "" {
		r.image = article.Image
	}
}

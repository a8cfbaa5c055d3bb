package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Pokemon is one list entry with its derived artwork URL.
type Pokemon struct {
	// Name is the species name as reported by the API.
	Name string `json:"name"`

	// URL is the canonical resource URL (ends in /<id>/).
	URL string `json:"url"`

	// ImageURL is the official artwork URL derived from the trailing
	// identifier in URL. Empty when no identifier could be extracted.
	ImageURL string `json:"image_url"`
}

// Page is one fetched batch of entries plus pagination cursors.
type Page struct {
	// Count is the total number of entries upstream, not the page size.
	Count int `json:"count"`

	// Next and Previous are upstream cursor URLs, nil at the ends.
	Next     *string `json:"next"`
	Previous *string `json:"previous"`

	// Pokemon holds the entries of this page in upstream order.
	Pokemon []Pokemon `json:"pokemon"`
}

// listResponse mirrors the PokéAPI list body.
type listResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

// parsePage decodes a list response body into a Page and derives
// the artwork URL for every entry.
func parsePage(body []byte, imageURLTemplate string) (*Page, error) {
	var raw listResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	page := &Page{
		Count:    raw.Count,
		Next:     raw.Next,
		Previous: raw.Previous,
		Pokemon:  make([]Pokemon, 0, len(raw.Results)),
	}

	for _, entry := range raw.Results {
		page.Pokemon = append(page.Pokemon, Pokemon{
			Name:     entry.Name,
			URL:      entry.URL,
			ImageURL: imageURLFor(entry.URL, imageURLTemplate),
		})
	}

	return page, nil
}

// imageURLFor interpolates the identifier extracted from resourceURL into
// the artwork URL template. Entries without an extractable identifier get
// an empty URL rather than failing the whole page.
func imageURLFor(resourceURL, template string) string {
	id := trailingSegment(resourceURL)
	if id == "" {
		log.Debug().
			Str("url", resourceURL).
			Msg("No identifier in resource URL, skipping artwork derivation")
		return ""
	}
	return fmt.Sprintf(template, id)
}

// trailingSegment returns the final non-empty path segment of a URL.
// Trailing slashes are ignored: ".../pokemon/25/" yields "25".
func trailingSegment(rawURL string) string {
	segments := strings.Split(rawURL, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

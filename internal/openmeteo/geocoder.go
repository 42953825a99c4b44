package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"weatherdeck/internal/weather"
)

// maxSearchResults bounds how many candidates a single search returns. The
// provider caps server-side via the count parameter; the slice is trimmed
// again after decoding in case it ever over-delivers.
const maxSearchResults = 5

// SearchLocations resolves a free-text place name into candidate locations,
// in the order the provider ranked them. It never fails to the caller: any
// transport, status or decode problem is logged and yields an empty slice,
// which is also what a well-formed "no matches" response yields.
func (c *Client) SearchLocations(ctx context.Context, query string) []weather.Location {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", fmt.Sprintf("%d", maxSearchResults))

		u := fmt.Sprintf("%s?%s", c.geocodingURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := c.doResilientRequest(ctx, buildRequest)
	if err != nil {
		log.Printf("geocoder: search failed for %q: %v", query, err)
		return nil
	}
	defer resp.Body.Close()

	var payload struct {
		Results []weather.Location `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("geocoder: decoding response for %q: %v", query, err)
		return nil
	}

	// Absent results means no matches, not an error.
	if len(payload.Results) == 0 {
		log.Printf("geocoder: no results found for query %q", query)
		return nil
	}

	if len(payload.Results) > maxSearchResults {
		payload.Results = payload.Results[:maxSearchResults]
	}
	return payload.Results
}

package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type pdbAttributes struct {
	Name     string   `json:"name"`
	House    string   `json:"house"`
	Species  string   `json:"species"`
	Gender   string   `json:"gender"`
	Image    string   `json:"image"`
	Patronus string   `json:"patronus"`
	Died     string   `json:"died"`
	Wands    []string `json:"wands"`
	Romances []string `json:"romances"`
}

type pdbPage struct {
	Data []struct {
		Attributes pdbAttributes `json:"attributes"`
	} `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// FetchPotterDB walks the supplemental source's JSON:API pagination,
// following links.next until the feed ends or the page ceiling is hit.
// Any failure ends the walk with whatever pages already arrived.
func (c *Client) FetchPotterDB(ctx context.Context) []Record {
	c.log.Info("Fetching PotterDB...", "url", c.pdbURL, "max_pages", c.maxPages)

	var out []Record
	url := c.pdbURL
	for page := 0; url != "" && page < c.maxPages; page++ {
		c.log.Debug("Fetching PotterDB page", "page", page+1)

		body, ok := c.fetchPage(ctx, url)
		if !ok {
			break
		}
		for _, item := range body.Data {
			a := item.Attributes
			out = append(out, Record{
				Name:     a.Name,
				House:    strings.TrimSpace(a.House),
				Species:  a.Species,
				Gender:   a.Gender,
				Wand:     strings.Join(a.Wands, "; "),
				Patronus: a.Patronus,
				Alive:    a.Died == "",
				Image:    a.Image,
				Romances: a.Romances,
			})
		}
		url = body.Links.Next
	}
	c.log.Info("PotterDB fetch complete", "records", len(out))
	return out
}

func (c *Client) fetchPage(ctx context.Context, url string) (*pdbPage, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn("PotterDB request build failed", "error", err)
		return nil, false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("PotterDB fetch failed", "error", err)
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("PotterDB returned non-200", "status", resp.StatusCode)
		return nil, false
	}

	var body pdbPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("PotterDB body decode failed", "error", err)
		return nil, false
	}
	return &body, true
}

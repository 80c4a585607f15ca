package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type hpWand struct {
	Wood   string      `json:"wood"`
	Core   string      `json:"core"`
	Length interface{} `json:"length"`
}

type hpCharacter struct {
	Name            string `json:"name"`
	House           string `json:"house"`
	Species         string `json:"species"`
	Gender          string `json:"gender"`
	Ancestry        string `json:"ancestry"`
	Wand            hpWand `json:"wand"`
	Patronus        string `json:"patronus"`
	HogwartsStudent bool   `json:"hogwartsStudent"`
	HogwartsStaff   bool   `json:"hogwartsStaff"`
	Alive           *bool  `json:"alive"`
	Image           string `json:"image"`
}

// FetchHPAPI retrieves the primary source in a single call. Any failure
// yields an empty slice; callers treat that as a valid (empty) source.
func (c *Client) FetchHPAPI(ctx context.Context) []Record {
	c.log.Info("Fetching HP-API...", "url", c.hpURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.hpURL, nil)
	if err != nil {
		c.log.Warn("HP-API request build failed", "error", err)
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("HP-API fetch failed", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("HP-API returned non-200", "status", resp.StatusCode)
		return nil
	}

	var raw []hpCharacter
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn("HP-API body decode failed", "error", err)
		return nil
	}

	out := make([]Record, 0, len(raw))
	for _, ch := range raw {
		alive := true
		if ch.Alive != nil {
			alive = *ch.Alive
		}
		out = append(out, Record{
			Name:     ch.Name,
			House:    strings.TrimSpace(ch.House),
			Species:  ch.Species,
			Gender:   ch.Gender,
			Ancestry: ch.Ancestry,
			Wand:     wandDescriptor(ch.Wand),
			Patronus: ch.Patronus,
			Student:  ch.HogwartsStudent,
			Staff:    ch.HogwartsStaff,
			Alive:    alive,
			Image:    ch.Image,
		})
	}
	c.log.Info("HP-API fetch complete", "records", len(out))
	return out
}

// wandDescriptor flattens the nested wand object into the free-text form
// the material rule keys on. A wand with any field set always carries the
// "wood" token; an absent wand stays empty.
func wandDescriptor(w hpWand) string {
	length := ""
	if w.Length != nil {
		length = strings.TrimSpace(fmt.Sprint(w.Length))
	}
	if w.Wood == "" && w.Core == "" && length == "" {
		return ""
	}
	return fmt.Sprintf("wood: %s, core: %s, length: %s", w.Wood, w.Core, length)
}

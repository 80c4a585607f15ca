package sources

import (
	"net/http"
	"strings"
	"time"

	"github.com/hallowgraph/backend/internal/platform/logger"
)

const (
	defaultHPAPIURL    = "https://hp-api.onrender.com/api/characters"
	defaultPotterDBURL = "https://api.potterdb.com/v1/characters?page[size]=100"
	defaultMaxPages    = 10
)

// Config carries the upstream endpoints. Zero values fall back to the
// public APIs; tests point them at local servers.
type Config struct {
	HPAPIURL    string
	PotterDBURL string
	MaxPages    int
}

// Client fetches character rows from the two upstream APIs. Fetch
// failures are never fatal: they are logged and collapse to whatever was
// retrieved so far, so an unreachable source yields an empty slice.
type Client struct {
	http     *http.Client
	log      *logger.Logger
	hpURL    string
	pdbURL   string
	maxPages int
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	hpURL := strings.TrimSpace(cfg.HPAPIURL)
	if hpURL == "" {
		hpURL = defaultHPAPIURL
	}
	pdbURL := strings.TrimSpace(cfg.PotterDBURL)
	if pdbURL == "" {
		pdbURL = defaultPotterDBURL
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log.With("client", "Sources"),
		hpURL:    hpURL,
		pdbURL:   pdbURL,
		maxPages: maxPages,
	}
}

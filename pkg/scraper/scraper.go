package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xhad/holocron/internal/models"
	"golang.org/x/time/rate"
)

const (
	rowSelector  = "table.wikitable > tbody > tr"
	cellSelector = "td"
)

type ScraperConfig struct {
	SourceURL string
	RateLimit float64       // requests per second
	Timeout   time.Duration // 0 disables the client timeout
	OnFetch   func(url string)
}

type Scraper struct {
	config  ScraperConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewWithConfig(config ScraperConfig) (*Scraper, error) {
	if config.SourceURL == "" {
		return nil, fmt.Errorf("source URL is required")
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}

	return &Scraper{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}, nil
}

func New(sourceURL string) *Scraper {
	s, _ := NewWithConfig(ScraperConfig{
		SourceURL: sourceURL,
	})
	return s
}

// Extract fetches the source page and returns every character row found
// in its data tables, in document order.
func (s *Scraper) Extract(ctx context.Context) ([]models.Character, error) {
	doc, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return ExtractCharacters(doc), nil
}

func (s *Scraper) fetch(ctx context.Context) (*goquery.Document, error) {
	if s.config.OnFetch != nil {
		s.config.OnFetch(s.config.SourceURL)
	}

	// Apply rate limiting
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.SourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, s.config.SourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source page: %v", err)
	}

	return doc, nil
}

// ExtractCharacters walks every wikitable row in the document. Rows that
// do not yield exactly three cells (headers, merged cells, malformed
// markup) are skipped, not errors.
func ExtractCharacters(doc *goquery.Document) []models.Character {
	var characters []models.Character

	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		if character, ok := characterFromRow(row); ok {
			characters = append(characters, character)
		}
	})

	return characters
}

func characterFromRow(row *goquery.Selection) (models.Character, bool) {
	var cells []string
	row.Find(cellSelector).Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cellText(cell))
	})

	if len(cells) != 3 {
		return models.Character{}, false
	}

	return models.Character{
		Name:        cells[0],
		Portrayal:   cells[1],
		Description: cells[2],
	}, true
}

// cellText concatenates the cell's text nodes and strips the single
// trailing newline the markup leaves on every cell.
func cellText(cell *goquery.Selection) string {
	return strings.TrimSuffix(cell.Text(), "\n")
}

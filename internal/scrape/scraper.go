package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Review is a raw scraped airline review, one CSV row. String fields stay
// empty when the page does not carry them; cleaning happens at ingest time.
type Review struct {
	Airline       string
	OverallRating string
	Verification  string
	ReviewText    string
	Aircraft      string
	TravellerType string
	SeatType      string
	Route         string
	DateFlown     string

	SeatComfort          int
	CabinStaffService    int
	FoodAndBeverages     int
	InflightEntertain    int
	GroundService        int
	WifiAndConnectivity  int
	ValueForMoney        int
	Recommended          string
}

// Source names an airline and its review listing URL.
type Source struct {
	Airline string
	URL     string
}

// DefaultSources lists the review pages of the supported airlines.
var DefaultSources = []Source{
	{"Air Canada", "https://www.airlinequality.com/airline-reviews/air-canada"},
	{"Lufthansa", "https://www.airlinequality.com/airline-reviews/lufthansa"},
	{"Emirates", "https://www.airlinequality.com/airline-reviews/emirates"},
	{"Qatar Airways", "https://www.airlinequality.com/airline-reviews/qatar-airways"},
	{"Singapore Airlines", "https://www.airlinequality.com/airline-reviews/singapore-airlines"},
	{"ANA", "https://www.airlinequality.com/airline-reviews/ana-all-nippon-airways"},
	{"Etihad Airways", "https://www.airlinequality.com/airline-reviews/etihad-airways"},
	{"Qantas", "https://www.airlinequality.com/airline-reviews/qantas-airways"},
	{"Japan Airlines", "https://www.airlinequality.com/airline-reviews/japan-airlines"},
	{"British Airways", "https://www.airlinequality.com/airline-reviews/british-airways"},
}

// Scraper fetches and parses airline review pages.
type Scraper struct {
	client    *http.Client
	pageDelay time.Duration
	logger    *zap.Logger
}

// New creates a scraper. pageDelay throttles successive page fetches so the
// review site is not hammered.
func New(client *http.Client, pageDelay time.Duration, logger *zap.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scraper{client: client, pageDelay: pageDelay, logger: logger}
}

// ScrapeAirline collects reviews for one airline across up to maxPages
// listing pages. A fetch error stops pagination and returns what was
// collected so far.
func (s *Scraper) ScrapeAirline(ctx context.Context, src Source, maxPages int) ([]Review, error) {
	var all []Review

	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/page/%d/", src.URL, page)

		reviews, err := s.scrapePage(ctx, src.Airline, url)
		if err != nil {
			s.logger.Warn("page fetch failed, stopping pagination",
				zap.String("airline", src.Airline),
				zap.Int("page", page),
				zap.Error(err))
			return all, err
		}
		all = append(all, reviews...)

		s.logger.Info("scraped page",
			zap.String("airline", src.Airline),
			zap.Int("page", page),
			zap.Int("reviews", len(reviews)))

		if page < maxPages && s.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(s.pageDelay):
			}
		}
	}

	return all, nil
}

func (s *Scraper) scrapePage(ctx context.Context, airline, url string) ([]Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	return ParsePage(doc, airline), nil
}

// ParsePage extracts all reviews from a listing page document.
func ParsePage(doc *goquery.Document, airline string) []Review {
	var reviews []Review

	doc.Find(`article[itemprop="review"]`).Each(func(_ int, article *goquery.Selection) {
		r := Review{
			Airline:       airline,
			OverallRating: strings.TrimSpace(article.Find(`span[itemprop="ratingValue"]`).First().Text()),
		}

		content := article.Find("div.tc_mobile div.text_content").First().Text()
		r.Verification, r.ReviewText = splitContent(content)

		article.Find("div.tc_mobile table.review-ratings tr").Each(func(_ int, row *goquery.Selection) {
			header := strings.TrimSpace(row.Find("td.review-rating-header").Text())
			applyRating(&r, header, row)
		})

		reviews = append(reviews, r)
	})

	return reviews
}

// splitContent separates the verification badge from the review body. The
// site renders them as "Trip Verified | actual review text".
func splitContent(content string) (verification, text string) {
	parts := strings.SplitN(content, "|", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(content)
}

func applyRating(r *Review, header string, row *goquery.Selection) {
	stars := func() int {
		return row.Find("span.star.fill").Length()
	}
	value := func() string {
		return strings.TrimSpace(row.Find("td.review-value").Text())
	}

	switch header {
	case "Aircraft":
		r.Aircraft = value()
	case "Type Of Traveller":
		r.TravellerType = value()
	case "Seat Type":
		r.SeatType = value()
	case "Route":
		r.Route = value()
	case "Date Flown":
		r.DateFlown = value()
	case "Recommended":
		r.Recommended = value()
	case "Seat Comfort":
		r.SeatComfort = stars()
	case "Cabin Staff Service":
		r.CabinStaffService = stars()
	case "Food & Beverages":
		r.FoodAndBeverages = stars()
	case "Inflight Entertainment":
		r.InflightEntertain = stars()
	case "Ground Service":
		r.GroundService = stars()
	case "Wifi & Connectivity":
		r.WifiAndConnectivity = stars()
	case "Value For Money":
		r.ValueForMoney = stars()
	}
}

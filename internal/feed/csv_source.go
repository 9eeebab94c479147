package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/models"
)

// Quoting sources whose prices are averaged per market.
var (
	outrightPrefixes = []string{"B365", "PS", "WH", "Avg"}
	overColumns      = []string{"B365>2.5", "P>2.5", "Avg>2.5"}
	bttsColumns      = []string{"B365GG", "AvgGG", "GG"}
)

var dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

// CSVSource fetches per-league CSV tables in the football-data column
// dialect over HTTP, with a TTL cache in front of the feed host.
type CSVSource struct {
	baseURL string
	apiKey  string
	client  *RateLimitedHTTPClient
	cache   *cache.Cache
	logger  *logrus.Logger
}

// NewCSVSource creates a CSV feed source.
func NewCSVSource(cfg config.FeedConfig, client *RateLimitedHTTPClient, logger *logrus.Logger) *CSVSource {
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	return &CSVSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

// Name returns the source identifier for logging.
func (s *CSVSource) Name() string {
	return "csv-feed"
}

// HistoricalMatches returns the league's completed matches in
// chronological order.
func (s *CSVSource) HistoricalMatches(ctx context.Context, leagueCode string) ([]models.MatchRecord, error) {
	cacheKey := "history:" + leagueCode
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]models.MatchRecord), nil
	}

	table, err := s.fetchTable(ctx, fmt.Sprintf("%s/%s.csv", s.baseURL, leagueCode))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for league %s: %w", leagueCode, err)
	}

	matches := make([]models.MatchRecord, 0, len(table.rows))
	for i, row := range table.rows {
		match, err := parseMatchRow(table.header, row)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"league": leagueCode,
				"row":    i + 2,
			}).Debug("Skipping malformed history row")
			continue
		}
		matches = append(matches, match)
	}

	s.cache.Set(cacheKey, matches, cache.DefaultExpiration)
	return matches, nil
}

// UpcomingFixtures returns the league's unsettled fixture rows.
func (s *CSVSource) UpcomingFixtures(ctx context.Context, leagueCode string) ([]models.FixtureRow, error) {
	cacheKey := "fixtures"
	table, ok := s.cachedTable(cacheKey)
	if !ok {
		var err error
		table, err = s.fetchTable(ctx, s.baseURL+"/fixtures.csv")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
		}
		s.cache.Set(cacheKey, table, cache.DefaultExpiration)
	}

	divIdx, ok := table.header["Div"]
	if !ok {
		return nil, fmt.Errorf("fixtures table has no Div column")
	}

	var fixtures []models.FixtureRow
	for _, row := range table.rows {
		if divIdx >= len(row) || row[divIdx] != leagueCode {
			continue
		}
		fixture, err := parseFixtureRow(leagueCode, table.header, row)
		if err != nil {
			s.logger.WithError(err).WithField("league", leagueCode).
				Debug("Skipping malformed fixture row")
			continue
		}
		fixtures = append(fixtures, fixture)
	}

	return fixtures, nil
}

type csvTable struct {
	header map[string]int
	rows   [][]string
}

func (s *CSVSource) cachedTable(key string) (*csvTable, bool) {
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*csvTable), true
	}
	return nil, false
}

func (s *CSVSource) fetchTable(ctx context.Context, url string) (*csvTable, error) {
	if s.apiKey != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + "key=" + s.apiKey
	}

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // feed rows have trailing column drift

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("feed CSV is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}

	return &csvTable{header: header, rows: records[1:]}, nil
}

func parseMatchRow(header map[string]int, row []string) (models.MatchRecord, error) {
	var match models.MatchRecord

	match.HomeTeam = field(header, row, "HomeTeam")
	match.AwayTeam = field(header, row, "AwayTeam")
	if match.HomeTeam == "" || match.AwayTeam == "" {
		return match, fmt.Errorf("missing team names")
	}

	date, err := parseDate(field(header, row, "Date"))
	if err != nil {
		return match, err
	}
	match.Date = date

	match.HomeGoals, err = strconv.Atoi(field(header, row, "FTHG"))
	if err != nil {
		return match, fmt.Errorf("bad FTHG: %w", err)
	}
	match.AwayGoals, err = strconv.Atoi(field(header, row, "FTAG"))
	if err != nil {
		return match, fmt.Errorf("bad FTAG: %w", err)
	}

	match.HomeShotsOnTarget = intField(header, row, "HST")
	match.AwayShotsOnTarget = intField(header, row, "AST")
	match.Odds = parseOdds(header, row)

	return match, nil
}

func parseFixtureRow(leagueCode string, header map[string]int, row []string) (models.FixtureRow, error) {
	var fixture models.FixtureRow
	fixture.League = leagueCode

	fixture.HomeTeam = field(header, row, "HomeTeam")
	fixture.AwayTeam = field(header, row, "AwayTeam")
	if fixture.HomeTeam == "" || fixture.AwayTeam == "" {
		return fixture, fmt.Errorf("missing team names")
	}

	date, err := parseDate(field(header, row, "Date"))
	if err != nil {
		return fixture, err
	}
	fixture.Date = date
	fixture.Odds = parseOdds(header, row)

	return fixture, nil
}

// parseOdds averages each market's price across the quoting sources
// present in the row.
func parseOdds(header map[string]int, row []string) *models.MarketOdds {
	var quotes []models.MarketOdds
	for _, prefix := range outrightPrefixes {
		quote := models.MarketOdds{
			Home: floatField(header, row, prefix+"H"),
			Draw: floatField(header, row, prefix+"D"),
			Away: floatField(header, row, prefix+"A"),
		}
		if quote.Home > 1 || quote.Draw > 1 || quote.Away > 1 {
			quotes = append(quotes, quote)
		}
	}
	for _, col := range overColumns {
		if v := floatField(header, row, col); v > 1 {
			quotes = append(quotes, models.MarketOdds{Over25: v})
		}
	}
	for _, col := range bttsColumns {
		if v := floatField(header, row, col); v > 1 {
			quotes = append(quotes, models.MarketOdds{BTTSYes: v})
		}
	}

	if len(quotes) == 0 {
		return nil
	}
	odds := models.AverageOdds(quotes)
	return &odds
}

func field(header map[string]int, row []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func intField(header map[string]int, row []string, name string) *int {
	v, err := strconv.Atoi(field(header, row, name))
	if err != nil {
		return nil
	}
	return &v
}

func floatField(header map[string]int, row []string, name string) float64 {
	v, err := strconv.ParseFloat(field(header, row, name), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

package services

import (
	"context"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/charmbracelet/log"

	"travelbook/dataset"
)

// AirportResolver maps a free-text country name to the airports of the
// closest known country.
type AirportResolver struct {
	source dataset.Source
	metric strutil.StringMetric
	logger *log.Logger
}

func NewAirportResolver(source dataset.Source, logger *log.Logger) *AirportResolver {
	dice := metrics.NewSorensenDice()
	dice.NgramSize = 2
	dice.CaseSensitive = false

	return &AirportResolver{
		source: source,
		metric: dice,
		logger: logger,
	}
}

// CountryMatch is the winning country and its score in [0, 1].
type CountryMatch struct {
	Country string
	Score   float64
}

// Resolve returns every airport of the best-matching country in dataset
// order. There is no minimum score: a poor query still yields the closest
// country's airports. An empty query is rejected.
func (r *AirportResolver) Resolve(ctx context.Context, countryQuery string) ([]dataset.Airport, error) {
	airports, match, err := r.resolve(ctx, countryQuery)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved country", "query", countryQuery, "country", match.Country,
		"score", match.Score, "airports", len(airports))
	return airports, nil
}

// Match returns only the canonical country chosen for countryQuery.
func (r *AirportResolver) Match(ctx context.Context, countryQuery string) (CountryMatch, error) {
	_, match, err := r.resolve(ctx, countryQuery)
	return match, err
}

func (r *AirportResolver) resolve(ctx context.Context, countryQuery string) ([]dataset.Airport, CountryMatch, error) {
	query := squash(countryQuery)
	if query == "" {
		return nil, CountryMatch{}, InvalidInput("Country parameter is required")
	}

	all, err := r.source.Load(ctx)
	if err != nil {
		return nil, CountryMatch{}, wrapError(KindDataUnavailable, err, "failed to load airport dataset")
	}
	if len(all) == 0 {
		return nil, CountryMatch{}, newError(KindDataUnavailable, "airport dataset is empty")
	}

	match := r.bestCountry(query, distinctCountries(all))

	var out []dataset.Airport
	for _, a := range all {
		if a.CountryName == match.Country {
			out = append(out, a)
		}
	}
	return out, match, nil
}

// bestCountry scores every candidate. Candidates arrive sorted, and only a
// strictly higher score replaces the leader, so ties go to the
// lexicographically smallest name.
func (r *AirportResolver) bestCountry(query string, countries []string) CountryMatch {
	best := CountryMatch{Score: -1}
	for _, c := range countries {
		score := strutil.Similarity(query, squash(c), r.metric)
		if score > best.Score {
			best = CountryMatch{Country: c, Score: score}
		}
	}
	return best
}

func distinctCountries(airports []dataset.Airport) []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, a := range airports {
		if _, ok := seen[a.CountryName]; ok {
			continue
		}
		seen[a.CountryName] = struct{}{}
		countries = append(countries, a.CountryName)
	}
	sort.Strings(countries)
	return countries
}

// squash drops all whitespace before comparison.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

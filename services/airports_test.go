package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"travelbook/dataset"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

var referenceAirports = dataset.StaticSource{
	{IATACode: "FRA", Name: "Frankfurt am Main Airport", City: "Frankfurt", CountryName: "Germany"},
	{IATACode: "DEL", Name: "Indira Gandhi International Airport", City: "Delhi", CountryName: "India"},
	{IATACode: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", CountryName: "France"},
	{IATACode: "MUC", Name: "Munich Airport", City: "Munich", CountryName: "Germany"},
	{IATACode: "BOM", Name: "Chhatrapati Shivaji International Airport", City: "Mumbai", CountryName: "India"},
	{IATACode: "TXL", Name: "Berlin Tegel Airport", City: "Berlin", CountryName: "Germany"},
	{IATACode: "JFK", Name: "John F Kennedy International Airport", City: "New York", CountryName: "United States"},
}

func codes(airports []dataset.Airport) []string {
	out := make([]string, len(airports))
	for i, a := range airports {
		out[i] = a.IATACode
	}
	return out
}

func assertCodes(t *testing.T, got []dataset.Airport, want ...string) {
	t.Helper()
	gotCodes := codes(got)
	if len(gotCodes) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotCodes)
	}
	for i := range want {
		if gotCodes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotCodes)
		}
	}
}

func TestResolve_ExactCountryInDatasetOrder(t *testing.T) {
	r := NewAirportResolver(referenceAirports, testLogger())

	airports, err := r.Resolve(context.Background(), "Germany")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCodes(t, airports, "FRA", "MUC", "TXL")
}

func TestResolve_Misspelling(t *testing.T) {
	r := NewAirportResolver(referenceAirports, testLogger())

	airports, err := r.Resolve(context.Background(), "Germny")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCodes(t, airports, "FRA", "MUC", "TXL")
}

func TestResolve_DifferentCase(t *testing.T) {
	src := dataset.StaticSource{
		{IATACode: "DEL", CountryName: "India"},
		{IATACode: "BOM", CountryName: "India"},
	}
	r := NewAirportResolver(src, testLogger())

	airports, err := r.Resolve(context.Background(), "india")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCodes(t, airports, "DEL", "BOM")
}

func TestResolve_WhitespaceInsensitive(t *testing.T) {
	r := NewAirportResolver(referenceAirports, testLogger())

	match, err := r.Match(context.Background(), "  united   states ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.Country != "United States" || match.Score != 1 {
		t.Errorf("expected exact match on United States, got %+v", match)
	}
}

func TestResolve_PoorMatchStillReturnsOneCountry(t *testing.T) {
	r := NewAirportResolver(referenceAirports, testLogger())

	airports, err := r.Resolve(context.Background(), "qqqq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(airports) == 0 {
		t.Fatal("expected airports for the best available country")
	}
	country := airports[0].CountryName
	for _, a := range airports {
		if a.CountryName != country {
			t.Fatalf("expected a single country, got %s and %s", country, a.CountryName)
		}
	}
}

func TestResolve_TieGoesToLexicographicallySmallest(t *testing.T) {
	src := dataset.StaticSource{
		{IATACode: "YYY", CountryName: "Yab"},
		{IATACode: "XXX", CountryName: "Xab"},
	}
	r := NewAirportResolver(src, testLogger())

	match, err := r.Match(context.Background(), "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match.Country != "Xab" {
		t.Errorf("expected Xab to win the tie, got %s", match.Country)
	}
}

func TestResolve_EmptyQueryIsInvalidInput(t *testing.T) {
	r := NewAirportResolver(referenceAirports, testLogger())

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := r.Resolve(context.Background(), q)
		if !IsKind(err, KindInvalidInput) {
			t.Errorf("query %q: expected invalid input, got %v", q, err)
		}
	}
}

type failingSource struct{ err error }

func (s failingSource) Load(ctx context.Context) ([]dataset.Airport, error) {
	return nil, s.err
}

func TestResolve_DataUnavailable(t *testing.T) {
	cause := errors.New("disk on fire")
	r := NewAirportResolver(failingSource{err: cause}, testLogger())

	_, err := r.Resolve(context.Background(), "India")
	if !IsKind(err, KindDataUnavailable) {
		t.Fatalf("expected data unavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}

	empty := NewAirportResolver(dataset.StaticSource{}, testLogger())
	if _, err := empty.Resolve(context.Background(), "India"); !IsKind(err, KindDataUnavailable) {
		t.Fatalf("expected data unavailable for empty dataset, got %v", err)
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// LocalPerUSD is the fixed rate used to convert hotel prices, which are
// quoted in the destination's local currency (INR for Delhi), into USD.
// It is not a live rate.
const LocalPerUSD = 88.0

const defaultLocalCurrency = "INR"

// FlightSearcher queries flight offers, best first.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error)
}

// HotelSearcher queries hotel offers in a fixed city, best first.
type HotelSearcher interface {
	SearchHotelOffers(ctx context.Context, checkIn, checkOut string) (*HotelOffers, error)
}

type PackageRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	CheckInDate   string
	CheckOutDate  string
	Adults        int
}

type QuoteStatus string

const (
	QuoteComplete QuoteStatus = "complete"
	QuotePartial  QuoteStatus = "partial"
)

type Leg string

const (
	LegFlight Leg = "flight"
	LegHotel  Leg = "hotel"
)

// PackageQuote combines the first flight offer and the first hotel offer.
// A leg with no usable offer is nil, contributes 0 to the total, is listed
// in Missing, and marks the quote partial.
type PackageQuote struct {
	Status          QuoteStatus  `json:"status"`
	Missing         []Leg        `json:"missing,omitempty"`
	FlightPriceUSD  float64      `json:"flightPriceUSD"`
	HotelPriceLocal float64      `json:"hotelPriceLocal"`
	HotelCurrency   string       `json:"hotelCurrency"`
	HotelPriceUSD   float64      `json:"hotelPriceUSD"`
	TotalUSD        float64      `json:"totalUSD"`
	ExchangeRate    float64      `json:"exchangeRate"`
	Summary         string       `json:"summary"`
	Flight          *FlightOffer `json:"flight"`
	Hotel           *HotelOffer  `json:"hotel"`
}

// Complete reports whether both legs were priced.
func (q *PackageQuote) Complete() bool {
	return q.Status == QuoteComplete
}

// PackageAggregator builds package quotes from independent flight and hotel
// queries.
type PackageAggregator struct {
	flights FlightSearcher
	hotels  HotelSearcher
	logger  *log.Logger
}

func NewPackageAggregator(flights FlightSearcher, hotels HotelSearcher, logger *log.Logger) *PackageAggregator {
	return &PackageAggregator{
		flights: flights,
		hotels:  hotels,
		logger:  logger,
	}
}

// BuildQuote runs the flight and hotel queries concurrently and joins them.
// A hotel search that finds no hotels yields a partial quote; any other
// failure in either query fails the quote and cancels the other query.
func (a *PackageAggregator) BuildQuote(ctx context.Context, req PackageRequest) (*PackageQuote, error) {
	if req.Origin == "" || req.DepartureDate == "" {
		return nil, InvalidInput("Please select a departure city and departure date")
	}
	if req.CheckInDate == "" || req.CheckOutDate == "" {
		return nil, InvalidInput("Please select check in and check out dates")
	}

	var (
		flights []FlightOffer
		hotels  *HotelOffers
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := a.flights.SearchFlights(gctx, FlightQuery{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
			Adults:        req.Adults,
			Currency:      "USD",
		})
		if err != nil {
			return err
		}
		flights = res
		return nil
	})
	g.Go(func() error {
		res, err := a.hotels.SearchHotelOffers(gctx, req.CheckInDate, req.CheckOutDate)
		if IsKind(err, KindNoHotelsFound) {
			a.logger.Warn("no hotels for package", "error", err)
			return nil
		}
		if err != nil {
			return err
		}
		hotels = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quote := a.combine(flights, hotels)
	a.logger.Info("package quote built", "origin", req.Origin, "status", quote.Status,
		"total_usd", fmt.Sprintf("%.2f", quote.TotalUSD))
	return quote, nil
}

func (a *PackageAggregator) combine(flights []FlightOffer, hotels *HotelOffers) *PackageQuote {
	q := &PackageQuote{
		Status:        QuoteComplete,
		ExchangeRate:  LocalPerUSD,
		HotelCurrency: defaultLocalCurrency,
	}

	if len(flights) > 0 {
		best := flights[0]
		price, ok := parsePrice(best.Price.Total)
		if !ok {
			price, ok = parsePrice(best.Price.GrandTotal)
		}
		if ok {
			q.Flight = &best
			q.FlightPriceUSD = price
		} else {
			a.logger.Warn("first flight offer has no usable price", "offer", best.ID)
		}
	}

	if hotels != nil && len(hotels.Data) > 0 {
		best := hotels.Data[0]
		if len(best.Offers) > 0 {
			if price, ok := parsePrice(best.Offers[0].Price.Total); ok {
				q.Hotel = &best
				q.HotelPriceLocal = price
				if cur := best.Offers[0].Price.Currency; cur != "" {
					q.HotelCurrency = cur
				}
			}
		}
		if q.Hotel == nil {
			a.logger.Warn("first hotel offer has no usable price", "hotel", best.Hotel.HotelID)
		}
	}

	if q.Flight == nil {
		q.Missing = append(q.Missing, LegFlight)
	}
	if q.Hotel == nil {
		q.Missing = append(q.Missing, LegHotel)
	}
	if len(q.Missing) > 0 {
		q.Status = QuotePartial
	}

	q.HotelPriceUSD = q.HotelPriceLocal / LocalPerUSD
	q.TotalUSD = q.FlightPriceUSD + q.HotelPriceUSD
	q.Summary = fmt.Sprintf("Flights: $%.2f USD + Hotels: %.0f %s = $%.2f USD (1 USD = %.0f %s)",
		q.FlightPriceUSD, q.HotelPriceLocal, q.HotelCurrency, q.TotalUSD, LocalPerUSD, q.HotelCurrency)
	return q
}

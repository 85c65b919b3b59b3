package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	maxFlightOffers = 5
	maxHotelIDs     = 20
)

// ─── Types ────────────────────────────────────────────────────────────────────

// FlightOffer is a provider flight offer. Only the fields the package
// aggregator reads are decoded; the original document is re-emitted verbatim
// when the offer is marshalled.
type FlightOffer struct {
	ID          string      `json:"id"`
	Price       OfferPrice  `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`

	raw json.RawMessage
}

type OfferPrice struct {
	Currency   string `json:"currency"`
	Base       string `json:"base,omitempty"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

func (o *FlightOffer) UnmarshalJSON(b []byte) error {
	type plain FlightOffer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = FlightOffer(p)
	o.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (o FlightOffer) MarshalJSON() ([]byte, error) {
	if len(o.raw) > 0 {
		return o.raw, nil
	}
	type plain FlightOffer
	return json.Marshal(plain(o))
}

// HotelOffer is one hotel with its available room offers, passed through
// like FlightOffer.
type HotelOffer struct {
	Hotel     HotelInfo   `json:"hotel"`
	Available bool        `json:"available"`
	Offers    []RoomOffer `json:"offers"`

	raw json.RawMessage
}

type HotelInfo struct {
	HotelID  string       `json:"hotelId"`
	Name     string       `json:"name"`
	CityCode string       `json:"cityCode"`
	Address  HotelAddress `json:"address"`
}

type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

type RoomOffer struct {
	ID           string     `json:"id"`
	CheckInDate  string     `json:"checkInDate"`
	CheckOutDate string     `json:"checkOutDate"`
	Price        OfferPrice `json:"price"`
}

func (h *HotelOffer) UnmarshalJSON(b []byte) error {
	type plain HotelOffer
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*h = HotelOffer(p)
	h.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (h HotelOffer) MarshalJSON() ([]byte, error) {
	if len(h.raw) > 0 {
		return h.raw, nil
	}
	type plain HotelOffer
	return json.Marshal(plain(h))
}

// HotelOffers mirrors the provider envelope: {"data": [...]}.
type HotelOffers struct {
	Data []HotelOffer `json:"data"`
}

// FlightQuery holds the flight-offer search parameters.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	Currency      string
}

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusConfig struct {
	BaseURL            string
	ClientID           string
	ClientSecret       string
	Timeout            time.Duration
	DefaultDestination string
	HotelCityCode      string
}

type AmadeusClient struct {
	baseURL            string
	defaultDestination string
	hotelCityCode      string
	tokens             *TokenCache
	httpClient         *http.Client
	logger             *log.Logger
}

// NewAmadeusClient builds a client that authenticates with the
// client-credentials grant. Use NewAmadeusClientWithTokens to supply a
// different credential cache.
func NewAmadeusClient(cfg AmadeusConfig, logger *log.Logger) *AmadeusClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	tokens := NewTokenCache(ClientCredentials(httpClient, cfg.BaseURL, cfg.ClientID, cfg.ClientSecret))
	return NewAmadeusClientWithTokens(cfg, tokens, httpClient, logger)
}

func NewAmadeusClientWithTokens(cfg AmadeusConfig, tokens *TokenCache, httpClient *http.Client, logger *log.Logger) *AmadeusClient {
	dest := cfg.DefaultDestination
	if dest == "" {
		dest = "DEL"
	}
	city := cfg.HotelCityCode
	if city == "" {
		city = "DEL"
	}
	return &AmadeusClient{
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		defaultDestination: dest,
		hotelCityCode:      city,
		tokens:             tokens,
		httpClient:         httpClient,
		logger:             logger,
	}
}

// HotelCityCode is the fixed destination city for hotel searches.
func (c *AmadeusClient) HotelCityCode() string {
	return c.hotelCityCode
}

// DefaultDestination is used when a flight query names no destination.
func (c *AmadeusClient) DefaultDestination() string {
	return c.defaultDestination
}

// apiError is a non-2xx provider response.
type apiError struct {
	Status int
	Detail string
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("amadeus error (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("amadeus error (%d)", e.Status)
}

type amadeusErrorBody struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (c *AmadeusClient) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		if KindOf(err) == "" {
			err = wrapError(KindUpstreamAuth, err, "Failed to authenticate with Amadeus API")
		}
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		apiErr := &apiError{Status: resp.StatusCode}
		var eb amadeusErrorBody
		if json.Unmarshal(body, &eb) == nil && len(eb.Errors) > 0 {
			apiErr.Detail = eb.Errors[0].Detail
		}
		return nil, apiErr
	}
	return body, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights returns at most five provider-ranked one-way offers.
func (c *AmadeusClient) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error) {
	if q.Origin == "" || q.DepartureDate == "" {
		return nil, InvalidInput("Missing required parameters: selectedCity and selectedDepartureDate are required")
	}
	if q.Destination == "" {
		q.Destination = c.defaultDestination
	}
	if q.Adults < 1 {
		q.Adults = 1
	}
	if q.Currency == "" {
		q.Currency = "USD"
	}

	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("currencyCode", q.Currency)
	params.Set("max", strconv.Itoa(maxFlightOffers))

	c.logger.Debug("searching flights", "origin", q.Origin, "destination", q.Destination,
		"date", q.DepartureDate, "adults", q.Adults)

	body, err := c.doRequest(ctx, "/v2/shopping/flight-offers", params)
	if err != nil {
		return nil, flightError(err)
	}

	var resp struct {
		Data []FlightOffer `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Data == nil {
		return nil, newError(KindUpstreamQuery, "Invalid response from Amadeus API")
	}

	flights := resp.Data
	if len(flights) > maxFlightOffers {
		flights = flights[:maxFlightOffers]
	}
	c.logger.Info("flight search complete", "origin", q.Origin, "destination", q.Destination, "offers", len(flights))
	return flights, nil
}

func flightError(err error) error {
	if KindOf(err) != "" {
		return err
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Detail != "":
			return wrapError(KindUpstreamQuery, err, "Amadeus API Error: %s", apiErr.Detail)
		case apiErr.Status == http.StatusUnauthorized:
			return wrapError(KindUpstreamAuth, err, "Authentication failed with Amadeus API")
		case apiErr.Status == http.StatusBadRequest:
			return wrapError(KindUpstreamQuery, err, "Invalid request parameters")
		}
	}
	return wrapError(KindUpstreamQuery, err, "Failed to search flights")
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotelOffers looks up hotels in the configured city, then requests
// offers for the stay across at most twenty of them, for one adult in one room.
func (c *AmadeusClient) SearchHotelOffers(ctx context.Context, checkIn, checkOut string) (*HotelOffers, error) {
	if checkIn == "" || checkOut == "" {
		return nil, InvalidInput("checkInDate and checkOutDate are required")
	}

	hotelIDs, err := c.hotelIDsByCity(ctx, c.hotelCityCode)
	if err != nil {
		return nil, hotelError(err)
	}
	if len(hotelIDs) == 0 {
		return nil, newError(KindNoHotelsFound, "No hotels found for %s", c.hotelCityCode)
	}
	if len(hotelIDs) > maxHotelIDs {
		hotelIDs = hotelIDs[:maxHotelIDs]
	}

	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	params.Set("checkInDate", checkIn)
	params.Set("checkOutDate", checkOut)
	params.Set("adults", "1")
	params.Set("roomQuantity", "1")

	body, err := c.doRequest(ctx, "/v3/shopping/hotel-offers", params)
	if err != nil {
		return nil, hotelError(err)
	}

	var offers HotelOffers
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, wrapError(KindUpstreamQuery, err, "Failed to fetch hotel offers")
	}
	if offers.Data == nil {
		offers.Data = []HotelOffer{}
	}
	c.logger.Info("hotel search complete", "city", c.hotelCityCode, "hotels", len(hotelIDs), "offers", len(offers.Data))
	return &offers, nil
}

func (c *AmadeusClient) hotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)

	body, err := c.doRequest(ctx, "/v1/reference-data/locations/hotels/by-city", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		if h.HotelID != "" {
			ids = append(ids, h.HotelID)
		}
	}
	return ids, nil
}

func hotelError(err error) error {
	if KindOf(err) != "" {
		return err
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return wrapError(KindUpstreamQuery, err, "%s", apiErr.Detail)
		}
		if apiErr.Status == http.StatusUnauthorized {
			return wrapError(KindUpstreamAuth, err, "Authentication failed with Amadeus API")
		}
	}
	return wrapError(KindUpstreamQuery, err, "Failed to fetch hotel offers")
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parsePrice reads a provider decimal string. ok is false for empty or
// malformed values.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

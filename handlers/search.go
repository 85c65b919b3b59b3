package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelbook/services"
)

type AirportOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Airports handles GET /api/airports?country=.
func (h *Handler) Airports(c *gin.Context) {
	country := c.Query("country")
	if strings.TrimSpace(country) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country parameter is required"})
		return
	}

	airports, err := h.resolver.Resolve(c.Request.Context(), country)
	if err != nil {
		h.fail(c, err, "Failed to fetch airports")
		return
	}

	options := make([]AirportOption, 0, len(airports))
	for _, a := range airports {
		options = append(options, AirportOption{Code: a.IATACode, Name: a.DisplayName()})
	}
	c.JSON(http.StatusOK, options)
}

func parseFlightParams(c *gin.Context) (services.FlightQuery, error) {
	var q services.FlightQuery

	city, date := c.Query("selectedCity"), c.Query("selectedDepartureDate")
	if city == "" || date == "" {
		return q, services.InvalidInput("Missing required parameters. Please provide selectedCity and selectedDepartureDate")
	}

	var err error
	if q.Origin, err = parseCode("selectedCity", city); err != nil {
		return q, err
	}
	if _, err = parseDate("selectedDepartureDate", date); err != nil {
		return q, err
	}
	q.DepartureDate = date

	if dest := c.Query("destinationLocationCode"); dest != "" {
		if q.Destination, err = parseCode("destinationLocationCode", dest); err != nil {
			return q, err
		}
	}
	if q.Adults, err = parseAdults(c.Query("adults")); err != nil {
		return q, err
	}
	q.Currency = "USD"
	if cur := c.Query("currencyCode"); cur != "" {
		if q.Currency, err = parseCode("currencyCode", cur); err != nil {
			return q, err
		}
	}
	return q, nil
}

// Flights handles GET /api/flights.
func (h *Handler) Flights(c *gin.Context) {
	q, err := parseFlightParams(c)
	if err != nil {
		h.fail(c, err, "Internal server error")
		return
	}

	flights, err := h.flights.SearchFlights(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "Internal server error")
		return
	}
	if flights == nil {
		flights = []services.FlightOffer{}
	}
	c.JSON(http.StatusOK, flights)
}

// Hotels handles GET /api/hotels?checkInDate=&checkOutDate=.
func (h *Handler) Hotels(c *gin.Context) {
	checkIn, checkOut := c.Query("checkInDate"), c.Query("checkOutDate")
	if err := parseStay(checkIn, checkOut); err != nil {
		h.fail(c, err, "Failed to fetch hotel offers")
		return
	}

	offers, err := h.hotels.SearchHotelOffers(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		h.fail(c, err, "Failed to fetch hotel offers")
		return
	}
	c.JSON(http.StatusOK, offers)
}

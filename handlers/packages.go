package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelbook/services"
)

func parsePackageParams(c *gin.Context) (services.PackageRequest, error) {
	var req services.PackageRequest

	fq, err := parseFlightParams(c)
	if err != nil {
		return req, err
	}
	checkIn, checkOut := c.Query("checkInDate"), c.Query("checkOutDate")
	if err := parseStay(checkIn, checkOut); err != nil {
		return req, err
	}

	return services.PackageRequest{
		Origin:        fq.Origin,
		Destination:   fq.Destination,
		DepartureDate: fq.DepartureDate,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Adults:        fq.Adults,
	}, nil
}

// Packages handles GET /api/packages and returns a combined flight + hotel quote.
func (h *Handler) Packages(c *gin.Context) {
	req, err := parsePackageParams(c)
	if err != nil {
		h.fail(c, err, "Failed to build package")
		return
	}

	quote, err := h.packages.BuildQuote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to build package")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// PackageSheet handles GET /api/packages/sheet and returns the quote as a PDF.
func (h *Handler) PackageSheet(c *gin.Context) {
	req, err := parsePackageParams(c)
	if err != nil {
		h.fail(c, err, "Failed to build package")
		return
	}

	quote, err := h.packages.BuildQuote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to build package")
		return
	}

	if req.Destination == "" {
		req.Destination = h.hotelCity
	}
	pdf, err := services.RenderQuoteSheet(services.QuoteSheet{
		Request:     req,
		Quote:       quote,
		HotelCity:   h.hotelCity,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		h.fail(c, err, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("package-%s-%s.pdf", req.Origin, req.DepartureDate)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

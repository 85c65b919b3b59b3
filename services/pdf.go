package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type QuoteSheet struct {
	Request     PackageRequest
	Quote       *PackageQuote
	HotelCity   string
	GeneratedAt time.Time
}

// RenderQuoteSheet renders a package quote as a one-page PDF.
func RenderQuoteSheet(data QuoteSheet) ([]byte, error) {
	if data.Quote == nil {
		return nil, fmt.Errorf("quote sheet: no quote")
	}
	q := data.Quote
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Travel package quote", false)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(29, 78, 216)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Travel Package Quote", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Flight + hotel estimate", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := fmt.Sprintf("This is NOT a booking confirmation. Hotel prices are converted at a fixed rate of 1 USD = %.0f %s and may differ from live rates.",
		q.ExchangeRate, q.HotelCurrency)
	if !q.Complete() {
		disclaimer = "PARTIAL QUOTE: no offer was found for " + joinLegs(q.Missing) + ". " + disclaimer
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	sectionHeader := func(title string) {
		pdf.SetFillColor(29, 78, 216)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s to %s", data.Request.Origin, data.Request.Destination))
	row("Departure", fmtDateReadable(data.Request.DepartureDate))
	row("Check-in", fmtDateReadable(data.Request.CheckInDate))
	row("Check-out", fmtDateReadable(data.Request.CheckOutDate))
	row("Generated", data.GeneratedAt.UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Flight ────────────────────────────────────────────────
	sectionHeader("Flight")
	if q.Flight == nil {
		row("Offer", "No flight offer available")
	} else {
		f := q.Flight
		if len(f.Itineraries) > 0 {
			it := f.Itineraries[0]
			if len(it.Segments) > 0 {
				first, last := it.Segments[0], it.Segments[len(it.Segments)-1]
				row("Carrier", first.CarrierCode+first.Number)
				row("Departs", fmt.Sprintf("%s %s", first.Departure.IATACode, formatTimestamp(first.Departure.At)))
				row("Arrives", fmt.Sprintf("%s %s", last.Arrival.IATACode, formatTimestamp(last.Arrival.At)))
				stops := "Direct"
				if n := len(it.Segments) - 1; n > 0 {
					stops = fmt.Sprintf("%d stop(s)", n)
				}
				row("Stops", stops)
			}
			if d := parseDuration(it.Duration); d != "" {
				row("Duration", d)
			}
		}
		row("Price", fmt.Sprintf("$%.2f USD", q.FlightPriceUSD))
	}
	pdf.Ln(4)

	// ── Hotel ─────────────────────────────────────────────────
	sectionHeader("Hotel")
	if q.Hotel == nil {
		row("Offer", "No hotel offer available")
	} else {
		h := q.Hotel
		row("Hotel", h.Hotel.Name)
		location := h.Hotel.Address.CityName
		if location == "" {
			location = data.HotelCity
		}
		if location != "" {
			row("Location", location)
		}
		row("Price", fmt.Sprintf("%.0f %s ($%.2f USD)", q.HotelPriceLocal, q.HotelCurrency, q.HotelPriceUSD))
	}
	pdf.Ln(4)

	// ── Cost Summary ──────────────────────────────────────────
	sectionHeader("Cost Estimate")
	row("Flight", fmt.Sprintf("$%.2f", q.FlightPriceUSD))
	row("Hotel", fmt.Sprintf("$%.2f", q.HotelPriceUSD))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.2f USD", q.TotalUSD), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Not a booking confirmation. Prices subject to change.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func joinLegs(legs []Leg) string {
	parts := make([]string, len(legs))
	for i, l := range legs {
		parts[i] = string(l)
	}
	return strings.Join(parts, " and ")
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

// formatTimestamp accepts the provider's local "2006-01-02T15:04:05" form.
func formatTimestamp(s string) string {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02 Jan 15:04")
		}
	}
	return s
}

// parseDuration converts ISO 8601 duration (PT5H30M) to human readable (5h 30m)
func parseDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	if h := strings.Index(iso, "H"); h >= 0 {
		result = iso[:h] + "h"
		iso = iso[h+1:]
	}
	if m := strings.Index(iso, "M"); m >= 0 {
		if result != "" {
			result += " "
		}
		result += iso[:m] + "m"
	}
	return result
}

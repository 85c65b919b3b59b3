package handlers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"travelbook/services"
)

const maxAdults = 9

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	codePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// parseDate accepts YYYY-MM-DD only.
func parseDate(name, value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, services.InvalidInput("Invalid %s format. Please use YYYY-MM-DD format", name)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, services.InvalidInput("Invalid %s: %s", name, value)
	}
	return t, nil
}

// parseCode normalizes a three-letter IATA or currency code.
func parseCode(name, value string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if !codePattern.MatchString(code) {
		return "", services.InvalidInput("%s must be a 3-letter code (e.g. JFK, DEL)", name)
	}
	return code, nil
}

// parseAdults defaults to 1 when empty.
func parseAdults(value string) (int, error) {
	if value == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > maxAdults {
		return 0, services.InvalidInput("adults must be a whole number between 1 and %d", maxAdults)
	}
	return n, nil
}

// parseStay validates a check-in/check-out pair.
func parseStay(checkIn, checkOut string) error {
	if checkIn == "" || checkOut == "" {
		return services.InvalidInput("Missing required parameters. Please provide checkInDate and checkOutDate")
	}
	in, err := parseDate("checkInDate", checkIn)
	if err != nil {
		return err
	}
	out, err := parseDate("checkOutDate", checkOut)
	if err != nil {
		return err
	}
	if !out.After(in) {
		return services.InvalidInput("checkOutDate must be after checkInDate")
	}
	return nil
}

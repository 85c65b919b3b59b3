package handlers

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"travelbook/services"
)

// Handler serves the travel search API.
type Handler struct {
	resolver  *services.AirportResolver
	flights   services.FlightSearcher
	hotels    services.HotelSearcher
	packages  *services.PackageAggregator
	hotelCity string
	probe     func(ctx context.Context) error
	upstream  bool
	logger    *log.Logger
}

type Options struct {
	Resolver *services.AirportResolver
	Flights  services.FlightSearcher
	Hotels   services.HotelSearcher
	Packages *services.PackageAggregator

	// HotelCity is the fixed hotel destination shown on quote sheets.
	HotelCity string

	// DatasetProbe reports whether the airport dataset is readable.
	DatasetProbe func(ctx context.Context) error

	// UpstreamConfigured reports whether provider credentials are set.
	UpstreamConfigured bool

	Logger *log.Logger
}

func New(opts Options) *Handler {
	return &Handler{
		resolver:  opts.Resolver,
		flights:   opts.Flights,
		hotels:    opts.Hotels,
		packages:  opts.Packages,
		hotelCity: opts.HotelCity,
		probe:     opts.DatasetProbe,
		upstream:  opts.UpstreamConfigured,
		logger:    opts.Logger,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/airports", h.Airports)
		api.GET("/flights", h.Flights)
		api.GET("/hotels", h.Hotels)
		api.GET("/packages", h.Packages)
		api.GET("/packages/sheet", h.PackageSheet)
	}
}

// fail translates err into an error response. Upstream auth failures and
// dataset failures never expose their cause; fallback is used for anything
// unclassified.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	msg := fallback

	switch services.KindOf(err) {
	case services.KindInvalidInput:
		status = http.StatusBadRequest
		msg = services.Message(err)
	case services.KindUpstreamQuery, services.KindNoHotelsFound:
		msg = services.Message(err)
	case services.KindUpstreamAuth:
		msg = "Authentication failed with Amadeus API"
	}

	logger := h.logger.With("request_id", RequestID(c), "path", c.Request.URL.Path)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Debug("rejected request", "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

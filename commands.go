package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"travelbook/config"
	"travelbook/dataset"
	"travelbook/handlers"
	"travelbook/services"
)

type loader func() (*config.Config, *log.Logger, error)

func serveCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func airportsCommand(load loader) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "airports <country>",
		Short: "Resolve a country name to its airports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			if csvPath == "" {
				csvPath = cfg.AirportsCSV
			}

			resolver := services.NewAirportResolver(dataset.NewCSVSource(csvPath), logger)
			query := strings.Join(args, " ")
			match, err := resolver.Match(cmd.Context(), query)
			if err != nil {
				return err
			}
			airports, err := resolver.Resolve(cmd.Context(), query)
			if err != nil {
				return err
			}

			logger.Info("matched country", "query", query, "country", match.Country, "score", fmt.Sprintf("%.3f", match.Score))
			out := cmd.OutOrStdout()
			for _, a := range airports {
				fmt.Fprintf(out, "%s\t%s\n", a.IATACode, a.DisplayName())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "airport CSV (defaults to AIRPORTS_CSV)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	source := dataset.NewCSVSource(cfg.AirportsCSV)
	amadeus := services.NewAmadeusClient(services.AmadeusConfig{
		BaseURL:            cfg.AmadeusBaseURL,
		ClientID:           cfg.AmadeusClientID,
		ClientSecret:       cfg.AmadeusClientSecret,
		Timeout:            cfg.AmadeusTimeout,
		DefaultDestination: cfg.DefaultDestination,
		HotelCityCode:      cfg.HotelCityCode,
	}, logger.WithPrefix("amadeus"))

	h := handlers.New(handlers.Options{
		Resolver:  services.NewAirportResolver(source, logger.WithPrefix("airports")),
		Flights:   amadeus,
		Hotels:    amadeus,
		Packages:  services.NewPackageAggregator(amadeus, amadeus, logger.WithPrefix("packages")),
		HotelCity: cfg.HotelCityCode,
		DatasetProbe: func(ctx context.Context) error {
			_, err := source.Load(ctx)
			return err
		},
		UpstreamConfigured: cfg.Validate() == nil,
		Logger:             logger,
	})

	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "amadeus", cfg.AmadeusBaseURL, "airports", source.Path())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

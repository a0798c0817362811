package commands

import (
	"context"
	"net/url"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/internal/app"
	"github.com/dharmasatrya/flightfinder/internal/models"
)

// stringFlags are passed through to the query parser unchanged.
var stringFlags = []struct {
	name, param, usage string
}{
	{"from", "from", "Origin IATA code"},
	{"to", "to", "Destination IATA code"},
	{"date", "departureDate", "Departure date YYYY-MM-DD"},
	{"return", "returnDate", "Return date YYYY-MM-DD"},
	{"segments", "segments", `Multi-city legs as JSON, e.g. '[{"from":"DEL","to":"BOM","departureDate":"2025-06-01"}]'`},
	{"class", "travelClass", "economy, premium_economy, business or first"},
	{"airline", "airline", "Airline name or code substring"},
	{"min-price", "minPrice", "Minimum price"},
	{"max-price", "maxPrice", "Maximum price"},
	{"max-stops", "maxStops", "Maximum number of stops"},
	{"departure-from", "departureTimeFrom", "Earliest departure time HH:MM"},
	{"departure-to", "departureTimeTo", "Latest departure time HH:MM"},
	{"arrival-from", "arrivalTimeFrom", "Earliest arrival time HH:MM"},
	{"arrival-to", "arrivalTimeTo", "Latest arrival time HH:MM"},
	{"sort", "sort", "price, duration, departure or arrival"},
	{"order", "order", "asc or desc"},
}

func SearchCmd() *cobra.Command {
	var (
		passengers int
		page       int
		limit      int
		refundable bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a flight search and print the JSON response",
		Example: `  flightctl search --from DEL --to BOM --date 2025-06-01
  flightctl search --from DEL --to BOM --date 2025-06-01 --return 2025-06-05 --sort duration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for _, f := range stringFlags {
				if v, _ := cmd.Flags().GetString(f.name); v != "" {
					params.Set(f.param, v)
				}
			}
			params.Set("passengers", strconv.Itoa(passengers))
			params.Set("page", strconv.Itoa(page))
			params.Set("limit", strconv.Itoa(limit))
			if refundable {
				params.Set("refundable", "true")
			}

			q, err := models.ParseSearchQuery(params)
			if err != nil {
				if printErr := printJSON(models.ErrorResponse{Success: false, Message: err.Error()}); printErr != nil {
					return printErr
				}
				return err
			}

			cfg, log := setup(cmd)
			defer log.Sync()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			application, err := app.New(ctx, cfg, prometheus.NewRegistry(), log)
			if err != nil {
				return err
			}
			defer application.Close(context.Background())

			resp, err := application.Service.Search(ctx, q)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	for _, f := range stringFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().IntVar(&passengers, "passengers", 1, "Number of adult passengers")
	cmd.Flags().IntVar(&page, "page", models.DefaultPage, "Result page")
	cmd.Flags().IntVar(&limit, "limit", models.DefaultLimit, "Results per page")
	cmd.Flags().BoolVar(&refundable, "refundable", false, "Only refundable fares")

	return cmd
}

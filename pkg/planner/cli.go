package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/federation/pkg/config"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/export"
	"github.com/travigo/federation/pkg/redis_client"
	"github.com/travigo/federation/pkg/region"
	"github.com/urfave/cli/v2"
)

func loadInstance(c *cli.Context) (*config.Instance, error) {
	if fixture := c.String("fixture"); fixture != "" {
		loaded, err := region.LoadFixture(fixture)
		if err != nil {
			return nil, err
		}

		instance := config.Default()
		instance.Regions = []config.Region{{Name: loaded.Name, Fixture: fixture}}
		return instance, nil
	}

	return config.Load(config.Path(c.String("config")))
}

func requestFromFlags(c *cli.Context) (*ctdf.JourneyRequest, error) {
	request := &ctdf.JourneyRequest{
		Region:          c.String("region"),
		Origin:          c.String("from"),
		Destination:     c.String("to"),
		Clockwise:       c.Bool("clockwise"),
		Debug:           c.Bool("debug"),
		OriginMode:      c.StringSlice("origin-mode"),
		DestinationMode: c.StringSlice("destination-mode"),
		MinNbJourneys:   c.Int("min-nb-journeys"),
	}

	if c.IsSet("max-nb-journeys") {
		maxNbJourneys := c.Int("max-nb-journeys")
		request.MaxNbJourneys = &maxNbJourneys
	}

	if datetime := c.String("datetime"); datetime != "" {
		parsed, err := time.Parse(time.RFC3339, datetime)
		if err != nil {
			return nil, fmt.Errorf("datetime should be an RFC3339 datetime: %w", err)
		}
		request.Datetime = parsed.Unix()
	}

	return request, request.Validate()
}

func writeResponse(response *ctdf.Response, output string, debug bool) error {
	switch output {
	case "csv":
		return export.WriteCSV(response, os.Stdout)
	case "json":
		rendered, err := ctdf.Render(response, debug)
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rendered)
	case "pretty":
		rendered, err := ctdf.Render(response, debug)
		if err != nil {
			return err
		}

		_, err = pretty.Println(rendered)
		return err
	default:
		return fmt.Errorf("unknown output %q", output)
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Plan a journey against the configured regions and print the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "configuration file, defaults to FEDERATION_CONFIG or config.yml",
			},
			&cli.StringFlag{
				Name:  "fixture",
				Usage: "answer from a fixture file instead of the configured regions",
			},
			&cli.StringFlag{
				Name: "region",
			},
			&cli.StringFlag{
				Name:     "from",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "datetime",
				Usage: "RFC3339 datetime, now when unset",
			},
			&cli.BoolFlag{
				Name:  "clockwise",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "keep the deleted journeys in the output",
			},
			&cli.StringSliceFlag{
				Name: "origin-mode",
			},
			&cli.StringSliceFlag{
				Name: "destination-mode",
			},
			&cli.IntFlag{
				Name: "min-nb-journeys",
			},
			&cli.IntFlag{
				Name: "max-nb-journeys",
			},
			&cli.StringFlag{
				Name:  "output",
				Value: "pretty",
				Usage: "pretty, json or csv",
			},
		},
		Action: func(c *cli.Context) error {
			instance, err := loadInstance(c)
			if err != nil {
				return err
			}

			if err := redis_client.Connect(false); err != nil {
				return err
			}

			regions, err := BuildRegistry(instance, redis_client.Client)
			if err != nil {
				return err
			}

			planner, err := New(instance, regions)
			if err != nil {
				return err
			}

			request, err := requestFromFlags(c)
			if err != nil {
				return err
			}

			response, err := planner.Plan(context.Background(), request)
			if err != nil {
				return err
			}

			return writeResponse(response, c.String("output"), request.Debug)
		},
	}
}

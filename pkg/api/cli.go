package api

import (
	"github.com/travigo/federation/pkg/config"
	"github.com/travigo/federation/pkg/elastic_client"
	"github.com/travigo/federation/pkg/planner"
	"github.com/travigo/federation/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the journeys web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "configuration file, defaults to FEDERATION_CONFIG or config.yml",
					},
				},
				Action: func(c *cli.Context) error {
					instance, err := config.Load(config.Path(c.String("config")))
					if err != nil {
						return err
					}

					if err := redis_client.Connect(false); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					defer elastic_client.WaitUntilQueueEmpty()

					regions, err := planner.BuildRegistry(instance, redis_client.Client)
					if err != nil {
						return err
					}

					journeyPlanner, err := planner.New(instance, regions)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), journeyPlanner)
				},
			},
		},
	}
}

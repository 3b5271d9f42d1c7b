// chirpctl is an example entry point: it resolves credentials from the
// environment, connects to the ChirpStack API, and prints the tenants with
// their applications and gateways.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"chirpstack-client/client"
	"chirpstack-client/internal/config"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := client.New(ctx, client.Options{
		Email:    cfg.APIEmail,
		Password: cfg.APIPassword,
		Server:   cfg.APIServer,
	},
		client.WithLogger(logger),
		client.WithPageSize(uint32(cfg.PageSize)),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect")
	}
	defer c.Close()

	tenants, err := c.ListAllTenants(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("list tenants")
	}

	for _, tenant := range tenants {
		fmt.Printf("tenant %s (%s)\n", tenant.Name, tenant.ID)

		apps, err := c.ListAllApplications(ctx, tenant.ID)
		if err != nil {
			logger.Fatal().Err(err).Str("tenant", tenant.ID).Msg("list applications")
		}
		for _, app := range apps {
			fmt.Printf("  application %s (%s)\n", app.Name, app.ID)

			devices, err := c.ListAllDevices(ctx, app.ID)
			if err != nil {
				logger.Fatal().Err(err).Str("application", app.ID).Msg("list devices")
			}
			for _, dev := range devices {
				fmt.Printf("    device %s (%s)\n", dev.Name, dev.DevEUI)
			}
		}

		gateways, err := c.ListAllGateways(ctx, tenant.ID)
		if err != nil {
			logger.Fatal().Err(err).Str("tenant", tenant.ID).Msg("list gateways")
		}
		for _, gw := range gateways {
			fmt.Printf("  gateway %s (%s)\n", gw.Name, gw.GatewayID)
		}
	}
}

package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/uids/cmd/app/commands"
	uidService "github.com/allisson/uids/internal/uid/service"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "create-secret",
			Usage: "Generate a new shared secret, optionally wrapped with KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS keeper URI (e.g., awskms:///alias/uids, base64key://... for development)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSecret(
					ctx,
					uidService.NewKMSService(),
					commands.DefaultIO(),
					cmd.String("kms-key-uri"),
					cmd.String("format"),
				)
			},
		},
	}
}

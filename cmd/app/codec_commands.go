package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/uids/cmd/app/commands"
	"github.com/allisson/uids/internal/app"
	"github.com/allisson/uids/internal/config"
)

// withContainer runs fn against a container built from the environment.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return fn(container)
}

func getCodecCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encode",
			Usage: "Encode an identifier into a token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "variant",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Identifier variant (uuid-v1, uuid-v4, persistable, object-id)",
				},
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "Identifier value (e.g., a UUID, '<kind>:<id>', a 24-char ObjectID hex)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.UidUseCase()
					if err != nil {
						return err
					}
					return commands.RunEncode(
						ctx,
						useCase,
						commands.DefaultIO(),
						cmd.String("variant"),
						cmd.String("value"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "decode",
			Usage: "Decode a token back into its identifier",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Required: true,
					Usage:    "Token to decode",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.UidUseCase()
					if err != nil {
						return err
					}
					return commands.RunDecode(
						ctx,
						useCase,
						commands.DefaultIO(),
						cmd.String("token"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "variants",
			Usage: "List the registered identifier variants",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					useCase, err := container.UidUseCase()
					if err != nil {
						return err
					}
					return commands.RunListVariants(useCase, commands.DefaultIO(), cmd.String("format"))
				})
			},
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/visit-auburn/imgprep/pkg/usecase"
)

func cmdCheck(o *options) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check that the image decoders and WebP encoder are available",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := usecase.NewConvert(o.fetcher, o.encoder)

			statuses, err := uc.CheckCodecs(ctx)

			ok := color.New(color.FgGreen)
			ng := color.New(color.FgRed)
			for _, s := range statuses {
				if s.Available {
					ok.Fprintf(o.stdout, "  [ok]      %s\n", s.Name)
					continue
				}
				ng.Fprintf(o.stdout, "  [missing] %s", s.Name)
				if s.Detail != "" {
					fmt.Fprintf(o.stdout, " (%s)", s.Detail)
				}
				fmt.Fprintln(o.stdout)
			}

			return err
		},
	}
}

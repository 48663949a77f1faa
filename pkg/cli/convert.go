package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/visit-auburn/imgprep/pkg/cli/config"
	"github.com/visit-auburn/imgprep/pkg/controller/console"
	"github.com/visit-auburn/imgprep/pkg/usecase"
)

// convertAction fetches every catalog image and writes WebP files under the
// project's public/images directory. It fails when any item fails.
func convertAction(o *options, outputCfg *config.Output) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		logger := ctxlog.From(ctx)

		imagesDir, err := outputCfg.ImagesDir()
		if err != nil {
			return err
		}

		uc := usecase.NewConvert(
			o.fetcher,
			o.encoder,
			usecase.WithReporter(console.New(o.stdout)),
		)

		// Missing codecs abort before any item is processed
		if _, err := uc.CheckCodecs(ctx); err != nil {
			return goerr.Wrap(err, "image codec check failed")
		}

		descriptors, err := o.catalog()
		if err != nil {
			return goerr.Wrap(err, "failed to load image catalog")
		}

		logger.Info("Loaded image catalog", "items", len(descriptors))

		summary := uc.Run(ctx, descriptors, imagesDir)
		if summary.ExitCode() != 0 {
			return goerr.New("one or more images failed",
				goerr.V("failed", summary.ErrorCount),
				goerr.V("succeeded", summary.SuccessCount),
			)
		}

		return nil
	}
}

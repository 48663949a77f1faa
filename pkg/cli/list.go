package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/visit-auburn/imgprep/pkg/cli/config"
	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

func cmdList(o *options, outputCfg *config.Output) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print the image catalog grouped by category",
		Action: func(ctx context.Context, c *cli.Command) error {
			descriptors, err := o.catalog()
			if err != nil {
				return goerr.Wrap(err, "failed to load image catalog")
			}

			imagesDir, err := outputCfg.ImagesDir()
			if err != nil {
				return err
			}

			byCategory := map[model.Category][]model.ImageDescriptor{}
			for _, d := range descriptors {
				byCategory[d.Category] = append(byCategory[d.Category], d)
			}

			heading := color.New(color.Bold)
			for _, cat := range model.Categories() {
				items := byCategory[cat]
				if len(items) == 0 {
					continue
				}

				heading.Fprintf(o.stdout, "%s (%d)\n", cat, len(items))
				for _, d := range items {
					rel, err := filepath.Rel(imagesDir, d.OutputPath(imagesDir))
					if err != nil {
						rel = d.OutputPath(imagesDir)
					}
					fmt.Fprintf(o.stdout, "  %-40s %s\n", filepath.ToSlash(rel), d.Description)
				}
			}

			fmt.Fprintf(o.stdout, "\n%d images -> %s\n", len(descriptors), imagesDir)
			return nil
		},
	}
}

package config

import (
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Output holds output location configuration
type Output struct {
	ProjectRoot string
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project-root",
			Usage:       "Website project root; images are written to <root>/public/images",
			Value:       ".",
			Destination: &c.ProjectRoot,
			Sources:     cli.EnvVars("IMGPREP_PROJECT_ROOT"),
		},
	}
}

// ImagesDir returns the absolute images root under the project root
func (c *Output) ImagesDir() (string, error) {
	root := c.ProjectRoot
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve project root", goerr.V("project_root", root))
	}

	return filepath.Join(abs, "public", "images"), nil
}

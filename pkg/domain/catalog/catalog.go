package catalog

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

//go:embed catalog.toml
var catalogData []byte

type file struct {
	Images []entry `toml:"image"`
}

type entry struct {
	Filename    string `toml:"filename"`
	Directory   string `toml:"directory"`
	URL         string `toml:"url"`
	Description string `toml:"description"`
	Category    string `toml:"category"`
}

// Default returns the image catalog compiled into the binary.
// Each call returns a new slice so callers cannot alter the table.
func Default() ([]model.ImageDescriptor, error) {
	return Parse(catalogData)
}

// Parse decodes a TOML catalog. Entry order is preserved. Only structure is
// validated: URL reachability and output path uniqueness are not checked.
func Parse(data []byte) ([]model.ImageDescriptor, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse catalog")
	}

	descriptors := make([]model.ImageDescriptor, 0, len(f.Images))
	for i, e := range f.Images {
		d := model.ImageDescriptor{
			Filename:    e.Filename,
			Directory:   e.Directory,
			URL:         e.URL,
			Description: e.Description,
			Category:    model.Category(e.Category),
		}
		if err := validate(d); err != nil {
			return nil, goerr.Wrap(err, "invalid catalog entry", goerr.V("index", i), goerr.V("filename", e.Filename))
		}
		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}

func validate(d model.ImageDescriptor) error {
	switch {
	case d.Filename == "":
		return goerr.New("filename is empty")
	case d.Directory == "":
		return goerr.New("directory is empty")
	case d.URL == "":
		return goerr.New("url is empty")
	case d.Description == "":
		return goerr.New("description is empty")
	case !d.Category.IsValid():
		return goerr.New("unknown category", goerr.V("category", d.Category))
	}
	return nil
}

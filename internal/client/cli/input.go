package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/filex"
)

// statFile is a test seam for filex.Stat.
var statFile = func(path string) (models.File, error) {
	return filex.Stat(path)
}

// parseFileSpecs turns "categoria=ruta" arguments into the per-category file
// lists, keeping the order given on the command line.
func parseFileSpecs(specs []string) (map[common.Category][]models.File, error) {
	files := make(map[common.Category][]models.File)
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --file %q, expected categoria=ruta", spec)
		}
		c := common.Category(strings.TrimSpace(name))
		if !c.Valid() {
			return nil, fmt.Errorf("%w %q, valid: %s", common.ErrorUnknownCategory, c, strings.Join(categoryNames(), ", "))
		}
		f, err := statFile(path)
		if err != nil {
			return nil, err
		}
		files[c] = append(files[c], f)
	}
	return files, nil
}

func categoryNames() []string {
	cs := common.Categories()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

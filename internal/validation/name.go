package validation

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("a harvester needs a name")

// HarvesterName trims name and rejects it only when nothing is left. Any
// other text is the service's to accept or refuse.
func HarvesterName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

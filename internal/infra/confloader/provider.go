package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// errNoBytes is returned by mapProvider.ReadBytes; koanf calls Read instead.
var errNoBytes = errors.New("confloader: map provider has no byte form")

// mapProvider feeds a map with dotted keys ("repl.prompt") to koanf.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errNoBytes
}

// Read unflattens the dotted keys so struct unmarshalling sees nested
// sections.
func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}

package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyCatalog = errors.New("catalog contains no drivers")

// Load reads a catalog from a YAML file.
// Sections missing in the file are taken from the built-in catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	def := Default()
	if len(c.Drivers) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(c.Engineers) == 0 {
		c.Engineers = def.Engineers
	}
	if len(c.Sponsors) == 0 {
		c.Sponsors = def.Sponsors
	}
	if len(c.RivalTeams) == 0 {
		c.RivalTeams = def.RivalTeams
	}
	if len(c.Races) == 0 {
		c.Races = def.Races
	}
	return &c, nil
}

func (c *Catalog) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

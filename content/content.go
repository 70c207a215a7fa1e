// Package content loads the study guides embedded in the binary.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"

	"github.com/adamspd/StudyGuide/models"
	"github.com/adamspd/StudyGuide/utils"
	"gopkg.in/yaml.v3"
)

//go:embed guides/*.yaml
var guideFiles embed.FS

// Catalog is the read-only set of guides, in display order.
type Catalog struct {
	guides []models.Guide
	byID   map[string]int
}

// Order in which guides are listed; guides not named here follow alphabetically.
var guideOrder = []string{"unit5", "uncertainty", "planning"}

// LoadCatalog parses and validates the embedded guides.
func LoadCatalog() (*Catalog, error) {
	sub, err := fs.Sub(guideFiles, "guides")
	if err != nil {
		return nil, fmt.Errorf("open embedded guides: %w", err)
	}
	return LoadFS(sub)
}

// LoadFS parses every *.yaml file at the root of fsys as one guide.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no guides found")
	}

	catalog := &Catalog{byID: make(map[string]int, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		guide, err := ParseGuide(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		if _, exists := catalog.byID[guide.ID]; exists {
			return nil, fmt.Errorf("%s: duplicate guide id %q", path.Base(name), guide.ID)
		}
		catalog.byID[guide.ID] = len(catalog.guides)
		catalog.guides = append(catalog.guides, guide)
		utils.LogContent("Loaded guide '%s' from %s: %d topics", guide.ID, name, len(guide.Topics))
	}

	catalog.sort()
	return catalog, nil
}

// ParseGuide decodes and validates a single YAML guide document.
func ParseGuide(data []byte) (models.Guide, error) {
	var guide models.Guide
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&guide); err != nil {
		return models.Guide{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return models.Guide{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return models.Guide{}, fmt.Errorf("parse yaml: %w", err)
	}
	return NormalizeGuide(guide)
}

func (c *Catalog) sort() {
	rank := func(id string) int {
		for i, known := range guideOrder {
			if known == id {
				return i
			}
		}
		return len(guideOrder)
	}
	sort.SliceStable(c.guides, func(i, j int) bool {
		ri, rj := rank(c.guides[i].ID), rank(c.guides[j].ID)
		if ri != rj {
			return ri < rj
		}
		return c.guides[i].ID < c.guides[j].ID
	})
	for i, g := range c.guides {
		c.byID[g.ID] = i
	}
}

// Guides returns all guides in display order.
func (c *Catalog) Guides() []models.Guide {
	return c.guides
}

// Guide returns the guide with the given id.
func (c *Catalog) Guide(id string) (*models.Guide, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.guides[i], true
}

// Topic resolves a guide id and a topic slug or label to its content.
func (c *Catalog) Topic(guideID, key string) (*models.Topic, bool) {
	guide, ok := c.Guide(guideID)
	if !ok {
		return nil, false
	}
	return guide.Topic(key)
}

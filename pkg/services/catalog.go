package services

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"school-gallery/pkg/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type categoryEntry struct {
	NameHi        string    `yaml:"name_hi"`
	NameEn        string    `yaml:"name_en"`
	Subcategories yaml.Node `yaml:"subcategories"`
}

type subcategoryEntry struct {
	NameHi string `yaml:"name_hi"`
	NameEn string `yaml:"name_en"`
	Count  int    `yaml:"count"`
}

// LoadCatalog reads a catalog file, or the built-in school catalog when path is empty
func LoadCatalog(path string) (*models.Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}

	// #nosec G304 - path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML. Mapping order is kept as display order.
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog line %d: expected a mapping of categories", doc.Line)
	}

	catalog := &models.Catalog{}
	seen := make(map[string]bool)

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if seen[key.Value] {
			return nil, fmt.Errorf("catalog line %d: duplicate category %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var entry categoryEntry
		if err := value.Decode(&entry); err != nil {
			return nil, fmt.Errorf("catalog category %q: %w", key.Value, err)
		}

		subs, err := parseSubcategories(key.Value, &entry.Subcategories)
		if err != nil {
			return nil, err
		}

		catalog.Categories = append(catalog.Categories, models.Category{
			ID:            key.Value,
			Name:          models.Label{Hi: entry.NameHi, En: entry.NameEn},
			Subcategories: subs,
		})
	}

	return catalog, nil
}

func parseSubcategories(category string, node *yaml.Node) ([]models.Subcategory, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog category %q line %d: subcategories must be a mapping", category, node.Line)
	}

	subs := make([]models.Subcategory, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return nil, fmt.Errorf("catalog line %d: duplicate subcategory %s/%s", key.Line, category, key.Value)
		}
		seen[key.Value] = true

		var entry subcategoryEntry
		if err := value.Decode(&entry); err != nil {
			return nil, fmt.Errorf("catalog subcategory %s/%s: %w", category, key.Value, err)
		}
		if entry.Count < 0 {
			return nil, fmt.Errorf("catalog subcategory %s/%s: count must not be negative", category, key.Value)
		}

		subs = append(subs, models.Subcategory{
			ID:    key.Value,
			Name:  models.Label{Hi: entry.NameHi, En: entry.NameEn},
			Count: entry.Count,
		})
	}

	return subs, nil
}

// ImagePaths returns the 1-indexed image paths of a subcategory folder
func ImagePaths(category, subcategory string, count int) []string {
	paths := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		paths = append(paths, ImagePath(category, subcategory, i))
	}
	return paths
}

// ImagePath returns the path of the n-th image of a folder
func ImagePath(category, subcategory string, n int) string {
	return fmt.Sprintf("images/gallery/%s/%s/image (%d).jpg", category, subcategory, n)
}

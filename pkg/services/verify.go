package services

import (
	"context"
	"fmt"
	"sort"

	"school-gallery/pkg/models"
)

// FolderReport compares a catalog count with the images actually present
type FolderReport struct {
	Category    string
	Subcategory string
	Declared    int
	Found       int
	Missing     []int
	Extra       []int
}

// OK reports whether the folder holds exactly image (1)..image (Declared)
func (r FolderReport) OK() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// VerifyCatalog checks every subcategory of the catalog against the image source
func VerifyCatalog(ctx context.Context, catalog *models.Catalog, lister Lister) ([]FolderReport, error) {
	var reports []FolderReport

	for _, category := range catalog.Categories {
		for _, sub := range category.Subcategories {
			ordinals, err := lister.List(ctx, category.ID, sub.ID)
			if err != nil {
				return reports, fmt.Errorf("listing %s/%s: %w", category.ID, sub.ID, err)
			}
			reports = append(reports, compareFolder(category.ID, sub, ordinals))
		}
	}

	return reports, nil
}

func compareFolder(category string, sub models.Subcategory, ordinals []int) FolderReport {
	report := FolderReport{
		Category:    category,
		Subcategory: sub.ID,
		Declared:    sub.Count,
		Found:       len(ordinals),
	}

	present := make(map[int]bool, len(ordinals))
	for _, n := range ordinals {
		present[n] = true
		if n > sub.Count {
			report.Extra = append(report.Extra, n)
		}
	}
	for n := 1; n <= sub.Count; n++ {
		if !present[n] {
			report.Missing = append(report.Missing, n)
		}
	}
	sort.Ints(report.Extra)

	return report
}

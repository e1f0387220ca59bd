package models

import "fmt"

// Label is a bilingual display string. Hindi is always shown first.
type Label struct {
	Hi string `json:"name_hi" yaml:"name_hi"`
	En string `json:"name_en" yaml:"name_en"`
}

// String joins both languages the way user-facing messages are shown.
func (l Label) String() string {
	return fmt.Sprintf("%s | %s", l.Hi, l.En)
}

// Subcategory is a photo folder inside a category
type Subcategory struct {
	ID    string `json:"id"`
	Name  Label  `json:"name"`
	Count int    `json:"count"`
}

// Category groups subcategories in catalog order
type Category struct {
	ID            string        `json:"id"`
	Name          Label         `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Catalog is the static category -> subcategory -> count mapping
type Catalog struct {
	Categories []Category `json:"categories"`
}

// Category returns the category with the given id
func (c *Catalog) Category(id string) (Category, bool) {
	for _, category := range c.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

// Subcategory returns the subcategory with the given ids
func (c *Catalog) Subcategory(categoryID, subcategoryID string) (Subcategory, bool) {
	category, ok := c.Category(categoryID)
	if !ok {
		return Subcategory{}, false
	}
	for _, sub := range category.Subcategories {
		if sub.ID == subcategoryID {
			return sub, true
		}
	}
	return Subcategory{}, false
}

// MaxCount is the largest photo count of any subcategory
func (c *Catalog) MaxCount() int {
	largest := 0
	for _, category := range c.Categories {
		for _, sub := range category.Subcategories {
			largest = max(largest, sub.Count)
		}
	}
	return largest
}

// View is the visible gallery screen. Exactly one is active at a time.
type View int

const (
	ViewCategories View = iota
	ViewSubcategories
	ViewPhotos
)

func (v View) String() string {
	switch v {
	case ViewCategories:
		return "categories"
	case ViewSubcategories:
		return "subcategories"
	case ViewPhotos:
		return "photos"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Selection is the user's current focus in the gallery
type Selection struct {
	Category    string
	Subcategory string
	Images      []string
	Index       int
}

// CategoryCard is a clickable category or subcategory tile
type CategoryCard struct {
	ID       string
	Name     Label
	Subtitle Label
	Href     string
}

// PhotoCard is a clickable thumbnail in the photo grid
type PhotoCard struct {
	Index       int
	Number      int
	Src         string
	Placeholder string
	Href        string
}

// Modal describes the full-screen viewer when it is open
type Modal struct {
	Index        int
	Src          string
	DownloadHref string
	DownloadName string
	PrevHref     string
	NextHref     string
	CloseHref    string
}

// Page is everything needed to paint one gallery screen
type Page struct {
	View           string
	Title          Label
	Categories     []CategoryCard
	Subcategories  []CategoryCard
	Photos         []PhotoCard
	Empty          bool
	EmptyMessage   Label
	ShowExport     bool
	ExportHref     string
	ExportFilename string
	ExportLabel    Label
	ExportBusy     Label
	ExportDisabled bool
	BackHref       string
	Modal          *Modal
	ScrollLocked   bool
}

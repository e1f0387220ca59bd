package services

import (
	"fmt"
	"log"

	"school-gallery/pkg/models"
)

// Controller drives one gallery instance through
// Categories -> Subcategories -> Photos and back.
type Controller struct {
	catalog *models.Catalog
	view    models.View
	sel     models.Selection
	viewer  Viewer
}

// NewController starts a gallery on the categories view
func NewController(catalog *models.Catalog) *Controller {
	return &Controller{
		catalog: catalog,
		view:    models.ViewCategories,
	}
}

func (c *Controller) View() models.View        { return c.view }
func (c *Controller) Viewer() *Viewer          { return &c.viewer }
func (c *Controller) Catalog() *models.Catalog { return c.catalog }

// Selection returns a copy of the current selection
func (c *Controller) Selection() models.Selection {
	sel := c.sel
	sel.Images = append([]string(nil), c.sel.Images...)
	sel.Index = c.viewer.Index()
	return sel
}

// EnterSubcategories shows the subcategories of a category. Unknown ids leave
// the visible state untouched.
func (c *Controller) EnterSubcategories(categoryID string) error {
	if _, ok := c.catalog.Category(categoryID); !ok {
		log.Printf("Category not found: %s", categoryID)
		return fmt.Errorf("category %q: %w", categoryID, ErrCatalogMiss)
	}

	c.viewer.Close()
	c.sel.Category = categoryID
	c.view = models.ViewSubcategories
	return nil
}

// EnterPhotos shows the photos of a subcategory. It is reachable from the
// subcategories view of the same category, or from its own photos view.
func (c *Controller) EnterPhotos(categoryID, subcategoryID string) error {
	sub, ok := c.catalog.Subcategory(categoryID, subcategoryID)
	if !ok {
		log.Printf("Subcategory not found: %s/%s", categoryID, subcategoryID)
		return fmt.Errorf("subcategory %s/%s: %w", categoryID, subcategoryID, ErrCatalogMiss)
	}
	if c.view == models.ViewCategories || c.sel.Category != categoryID {
		return fmt.Errorf("photos of %s/%s from %s view: %w", categoryID, subcategoryID, c.view, ErrInvalidTransition)
	}

	c.sel.Category = categoryID
	c.sel.Subcategory = subcategoryID
	c.sel.Images = ImagePaths(categoryID, subcategoryID, sub.Count)
	c.viewer.reset(c.sel.Images)
	c.view = models.ViewPhotos
	return nil
}

// Back goes from Photos to Subcategories, or from Subcategories to Categories
func (c *Controller) Back() {
	c.viewer.Close()
	switch c.view {
	case models.ViewPhotos:
		c.view = models.ViewSubcategories
	case models.ViewSubcategories:
		c.view = models.ViewCategories
	}
}

// OpenPhoto opens the modal viewer on a zero-based index into the current images
func (c *Controller) OpenPhoto(index int) bool {
	if c.view != models.ViewPhotos {
		return false
	}
	return c.viewer.Open(index)
}

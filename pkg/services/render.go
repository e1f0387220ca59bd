package services

import (
	"fmt"
	"net/url"
	"strings"

	"school-gallery/pkg/models"
)

// ExportStatus is the state of the bulk export trigger
type ExportStatus struct {
	Busy  bool
	Label models.Label
}

// Render builds the page for the active view. It reads the controller and
// export status only, so the same state always paints the same page.
func Render(c *Controller, export ExportStatus) models.Page {
	page := models.Page{
		View:  c.view.String(),
		Title: MsgGalleryTitle,
	}
	sel := c.sel

	switch c.view {
	case models.ViewCategories:
		for _, category := range c.catalog.Categories {
			page.Categories = append(page.Categories, models.CategoryCard{
				ID:       category.ID,
				Name:     category.Name,
				Subtitle: SubcategoryCount(len(category.Subcategories)),
				Href:     CategoryHref(category.ID),
			})
		}

	case models.ViewSubcategories:
		category, _ := c.catalog.Category(sel.Category)
		page.Title = category.Name
		page.BackHref = GalleryHref()
		for _, sub := range category.Subcategories {
			page.Subcategories = append(page.Subcategories, models.CategoryCard{
				ID:       sub.ID,
				Name:     sub.Name,
				Subtitle: PhotoCount(sub.Count),
				Href:     SubcategoryHref(category.ID, sub.ID),
			})
		}

	case models.ViewPhotos:
		sub, _ := c.catalog.Subcategory(sel.Category, sel.Subcategory)
		page.Title = sub.Name
		page.BackHref = CategoryHref(sel.Category)

		if len(sel.Images) == 0 {
			page.Empty = true
			page.EmptyMessage = MsgNoPhotos
			break
		}

		for i, path := range sel.Images {
			page.Photos = append(page.Photos, models.PhotoCard{
				Index:       i,
				Number:      i + 1,
				Src:         ImageHref(path),
				Placeholder: PlaceholderHref(i + 1),
				Href:        PhotoHref(sel.Category, sel.Subcategory, i+1),
			})
		}
		page.ShowExport = true
		page.ExportHref = SubcategoryHref(sel.Category, sel.Subcategory) + "/download"
		page.ExportFilename = ArchiveName(sel.Subcategory)
		page.ExportLabel = export.Label
		page.ExportBusy = MsgDownloading
		page.ExportDisabled = export.Busy

		if c.viewer.IsOpen() {
			n := c.viewer.Len()
			i := c.viewer.Index()
			page.Modal = &models.Modal{
				Index:        i,
				Src:          ImageHref(c.viewer.Image()),
				DownloadHref: ImageHref(c.viewer.Image()),
				DownloadName: c.viewer.DownloadName(),
				PrevHref:     PhotoHref(sel.Category, sel.Subcategory, wrapIndex(i, -1, n)+1),
				NextHref:     PhotoHref(sel.Category, sel.Subcategory, wrapIndex(i, 1, n)+1),
				CloseHref:    SubcategoryHref(sel.Category, sel.Subcategory),
			}
			page.ScrollLocked = c.viewer.ScrollLocked()
		}
	}

	return page
}

func GalleryHref() string { return "/gallery/" }

func CategoryHref(category string) string {
	return "/gallery/" + url.PathEscape(category)
}

func SubcategoryHref(category, subcategory string) string {
	return CategoryHref(category) + "/" + url.PathEscape(subcategory)
}

func PhotoHref(category, subcategory string, number int) string {
	return fmt.Sprintf("%s/photo/%d", SubcategoryHref(category, subcategory), number)
}

func PlaceholderHref(number int) string {
	return fmt.Sprintf("/placeholder/%d.jpg", number)
}

// ImageHref escapes an image path for use in a URL, e.g. the space and
// parentheses in "image (1).jpg".
func ImageHref(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}

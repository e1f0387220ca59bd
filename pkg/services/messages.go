package services

import (
	"errors"
	"fmt"

	"school-gallery/pkg/models"
)

var (
	// ErrCatalogMiss is returned when a category or subcategory is not in the catalog
	ErrCatalogMiss = errors.New("not in catalog")
	// ErrEmptyCollection is returned when an operation needs at least one image
	ErrEmptyCollection = errors.New("no images in current selection")
	// ErrInvalidTransition is returned for navigation the state machine does not allow
	ErrInvalidTransition = errors.New("invalid gallery transition")
	// ErrArchiverUnavailable is returned when no archive capability is configured
	ErrArchiverUnavailable = errors.New("archive capability unavailable")
	// ErrArchiveAssembly is returned when the archive could not be built or delivered
	ErrArchiveAssembly = errors.New("archive assembly failed")
	// ErrExportInProgress is returned when an export for the same selection is already running
	ErrExportInProgress = errors.New("export already in progress")
)

var (
	MsgGalleryTitle = models.Label{Hi: "फोटो गैलरी", En: "Photo Gallery"}
	MsgNoPhotos     = models.Label{Hi: "इस श्रेणी में कोई फोटो उपलब्ध नहीं है।", En: "No photos available in this category."}
	MsgView         = models.Label{Hi: "देखें", En: "View"}
	MsgBack         = models.Label{Hi: "वापस", En: "Back"}
	MsgDownload     = models.Label{Hi: "डाउनलोड करें", En: "Download"}
	MsgDownloadAll  = models.Label{Hi: "सभी फोटो डाउनलोड करें", En: "Download All Photos"}
	MsgDownloading  = models.Label{Hi: "डाउनलोड हो रहा है...", En: "Downloading..."}
	MsgNotFound     = models.Label{Hi: "यह गैलरी उपलब्ध नहीं है।", En: "This gallery does not exist."}

	MsgArchiverMissing = models.Label{Hi: "ZIP सुविधा उपलब्ध नहीं है। कृपया पेज रीफ्रेश करें।", En: "ZIP library not loaded. Please refresh the page."}
	MsgExportFailed    = models.Label{Hi: "फोटो डाउनलोड करने में त्रुटि। कृपया पुनः प्रयास करें।", En: "Error downloading photos. Please try again."}
	MsgExportBusy      = models.Label{Hi: "डाउनलोड पहले से चल रहा है।", En: "A download is already in progress."}
	MsgExportDone      = models.Label{Hi: "डाउनलोड पूरा हुआ।", En: "Download complete."}
)

// PhotoCount is the "{n} photos" subtitle on subcategory cards
func PhotoCount(n int) models.Label {
	return models.Label{
		Hi: fmt.Sprintf("%d फोटो", n),
		En: fmt.Sprintf("%d Photos", n),
	}
}

// SubcategoryCount is the subtitle on category cards
func SubcategoryCount(n int) models.Label {
	return models.Label{
		Hi: fmt.Sprintf("%d फोल्डर", n),
		En: fmt.Sprintf("%d Folders", n),
	}
}

// UserMessage maps an error to the bilingual text shown to visitors
func UserMessage(err error) models.Label {
	switch {
	case errors.Is(err, ErrArchiverUnavailable):
		return MsgArchiverMissing
	case errors.Is(err, ErrExportInProgress):
		return MsgExportBusy
	case errors.Is(err, ErrCatalogMiss), errors.Is(err, ErrInvalidTransition):
		return MsgNotFound
	case errors.Is(err, ErrEmptyCollection):
		return MsgNoPhotos
	}
	return MsgExportFailed
}

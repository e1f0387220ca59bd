package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gallery/pkg/models"
)

func testCatalog(t *testing.T) *models.Catalog {
	t.Helper()
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	return catalog
}

func TestController_StartsOnCategories(t *testing.T) {
	c := NewController(testCatalog(t))
	assert.Equal(t, models.ViewCategories, c.View())
	assert.Empty(t, c.Selection().Images)
}

func TestController_EnterSubcategories(t *testing.T) {
	c := NewController(testCatalog(t))

	require.NoError(t, c.EnterSubcategories("events"))
	assert.Equal(t, models.ViewSubcategories, c.View())
	assert.Equal(t, "events", c.Selection().Category)
}

func TestController_EnterSubcategoriesMiss(t *testing.T) {
	c := NewController(testCatalog(t))

	err := c.EnterSubcategories("staff_room")
	assert.ErrorIs(t, err, ErrCatalogMiss)
	assert.Equal(t, models.ViewCategories, c.View())
	assert.Equal(t, "", c.Selection().Category)
}

func TestController_EnterPhotosBuildsPaths(t *testing.T) {
	catalog := testCatalog(t)

	for _, category := range catalog.Categories {
		for _, sub := range category.Subcategories {
			c := NewController(catalog)
			require.NoError(t, c.EnterSubcategories(category.ID))
			require.NoError(t, c.EnterPhotos(category.ID, sub.ID))

			images := c.Selection().Images
			require.Len(t, images, sub.Count, "%s/%s", category.ID, sub.ID)
			for i, path := range images {
				want := fmt.Sprintf("images/gallery/%s/%s/image (%d).jpg", category.ID, sub.ID, i+1)
				assert.Equal(t, want, path)
			}
			assert.Equal(t, models.ViewPhotos, c.View())
		}
	}
}

func TestController_NoSkipFromCategoriesToPhotos(t *testing.T) {
	c := NewController(testCatalog(t))

	err := c.EnterPhotos("school_photos", "inside")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.ViewCategories, c.View())
	assert.Empty(t, c.Selection().Images)
}

func TestController_EnterPhotosOtherCategoryRejected(t *testing.T) {
	c := NewController(testCatalog(t))
	require.NoError(t, c.EnterSubcategories("events"))

	err := c.EnterPhotos("school_photos", "inside")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.ViewSubcategories, c.View())
}

func TestController_EnterPhotosMissKeepsState(t *testing.T) {
	c := NewController(testCatalog(t))
	require.NoError(t, c.EnterSubcategories("school_photos"))
	require.NoError(t, c.EnterPhotos("school_photos", "inside"))

	err := c.EnterPhotos("school_photos", "roof")
	assert.ErrorIs(t, err, ErrCatalogMiss)
	assert.Equal(t, "inside", c.Selection().Subcategory)
	assert.Len(t, c.Selection().Images, 23)
}

func TestController_Back(t *testing.T) {
	c := NewController(testCatalog(t))
	require.NoError(t, c.EnterSubcategories("school_photos"))
	require.NoError(t, c.EnterPhotos("school_photos", "outside"))
	require.True(t, c.OpenPhoto(10))

	c.Back()
	assert.Equal(t, models.ViewSubcategories, c.View())
	assert.False(t, c.Viewer().IsOpen())

	c.Back()
	assert.Equal(t, models.ViewCategories, c.View())

	c.Back()
	assert.Equal(t, models.ViewCategories, c.View())
}

func TestController_OpenPhotoOnlyInPhotosView(t *testing.T) {
	c := NewController(testCatalog(t))
	assert.False(t, c.OpenPhoto(0))

	require.NoError(t, c.EnterSubcategories("school_photos"))
	require.NoError(t, c.EnterPhotos("school_photos", "inside"))
	require.True(t, c.OpenPhoto(5))
	assert.Equal(t, 5, c.Selection().Index)
	assert.Equal(t, "images/gallery/school_photos/inside/image (6).jpg", c.Viewer().Image())
}

func TestController_ReenterPhotosResetsModal(t *testing.T) {
	c := NewController(testCatalog(t))
	require.NoError(t, c.EnterSubcategories("school_photos"))
	require.NoError(t, c.EnterPhotos("school_photos", "outside"))
	require.True(t, c.OpenPhoto(50))

	require.NoError(t, c.EnterPhotos("school_photos", "inside"))
	assert.False(t, c.Viewer().IsOpen())
	assert.Equal(t, 0, c.Viewer().Index())
	assert.Len(t, c.Selection().Images, 23)
}

func TestController_SelectionIsCopy(t *testing.T) {
	c := NewController(testCatalog(t))
	require.NoError(t, c.EnterSubcategories("school_photos"))
	require.NoError(t, c.EnterPhotos("school_photos", "inside"))

	sel := c.Selection()
	sel.Images[0] = "tampered"
	assert.Equal(t, "images/gallery/school_photos/inside/image (1).jpg", c.Selection().Images[0])
}

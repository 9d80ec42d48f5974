package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library-catalog/pkg/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database")
	}
	db.AutoMigrate(&models.Category{}, &models.LibraryItem{})
	return db
}

func int64Ptr(v int64) *int64 { return &v }

func TestInsertAndListCategories(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	require.NoError(t, store.Insert("Fiction"))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), list[0].ID)
	assert.Equal(t, "Fiction", list[0].Name)
}

func TestInsertCategoryTrimsName(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	require.NoError(t, store.Insert("  Fiction  "))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Fiction", list[0].Name)
}

func TestInsertCategoryEmptyName(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	err := store.Insert("   ")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestInsertCategoryDuplicateIgnoresCase(t *testing.T) {
	store := NewCategoryStore(setupTestDB())
	require.NoError(t, store.Insert("Fiction"))

	err := store.Insert("fiction")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	list, err := store.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGetCategoryByIDNotFound(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	_, err := store.GetByID(42)

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateCategoryRename(t *testing.T) {
	store := NewCategoryStore(setupTestDB())
	require.NoError(t, store.Insert("Fiction"))

	require.NoError(t, store.Update(1, "Science Fiction"))

	category, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", category.Name)
}

func TestUpdateCategoryKeepsOwnNameWithDifferentCase(t *testing.T) {
	store := NewCategoryStore(setupTestDB())
	require.NoError(t, store.Insert("Fiction"))

	require.NoError(t, store.Update(1, "FICTION"))

	category, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "FICTION", category.Name)
}

func TestUpdateCategoryConflictsWithOtherName(t *testing.T) {
	store := NewCategoryStore(setupTestDB())
	require.NoError(t, store.Insert("Fiction"))
	require.NoError(t, store.Insert("History"))

	err := store.Update(2, "fiction")

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	err := store.Update(42, "Fiction")

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteCategoryGuardedByItems(t *testing.T) {
	db := setupTestDB()
	store := NewCategoryStore(db)
	itemStore := NewItemStore(db)
	require.NoError(t, store.Insert("Movies"))
	require.NoError(t, itemStore.Insert(models.LibraryItemInput{
		CategoryID:     1,
		Title:          "Star Wars",
		Type:           models.TypeDVD,
		RunTimeMinutes: int64Ptr(120),
	}))

	err := store.DeleteByID(1)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	require.NoError(t, itemStore.DeleteByID(1))
	assert.NoError(t, store.DeleteByID(1))
}

func TestDeleteCategoryNotFound(t *testing.T) {
	store := NewCategoryStore(setupTestDB())

	err := store.DeleteByID(42)

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

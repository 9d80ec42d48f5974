package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library-catalog/pkg/models"
)

func seedItem(t *testing.T, db *gorm.DB, itemType string) uint {
	t.Helper()
	store := NewItemStore(db)
	categoryID := seedCategory(t, db, "Seeded")
	input := models.LibraryItemInput{
		CategoryID: categoryID,
		Title:      "Star Wars",
		Type:       itemType,
	}
	if itemType == models.TypeBook || itemType == models.TypeReferenceBook {
		input.Author = "George Lucas"
		input.Pages = int64Ptr(300)
	} else {
		input.RunTimeMinutes = int64Ptr(120)
	}
	require.NoError(t, store.Insert(input))

	var item models.LibraryItem
	require.NoError(t, db.Order("id DESC").First(&item).Error)
	return item.ID
}

func TestBorrowSetsBorrowerAndDueDate(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	require.NoError(t, store.Borrow(id, "  Alice  "))

	var item models.LibraryItem
	require.NoError(t, db.First(&item, id).Error)
	require.NotNil(t, item.Borrower)
	require.NotNil(t, item.BorrowDueDate)
	assert.Equal(t, "Alice", *item.Borrower)
	assert.InDelta(t, time.Now().Add(BorrowPeriod).Unix(), *item.BorrowDueDate, 5)

	view, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, view.BorrowDueDate)
	expected := time.Unix(*item.BorrowDueDate, 0).UTC().Format("02/01/2006")
	assert.Equal(t, expected, *view.BorrowDueDate)
}

func TestBorrowReferenceBookFails(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeReferenceBook)

	err := store.Borrow(id, "Alice")

	var rule *RuleViolationError
	require.ErrorAs(t, err, &rule)
	assert.Contains(t, rule.Message, "not borrowable")
}

func TestBorrowTwiceMentionsFirstBorrower(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	require.NoError(t, store.Borrow(id, "Alice"))
	err := store.Borrow(id, "Bob")

	var rule *RuleViolationError
	require.ErrorAs(t, err, &rule)
	assert.Contains(t, rule.Message, "Alice")

	var item models.LibraryItem
	require.NoError(t, db.First(&item, id).Error)
	assert.Equal(t, "Alice", *item.Borrower)
}

func TestBorrowNotFound(t *testing.T) {
	store := NewItemStore(setupTestDB())

	err := store.Borrow(42, "Alice")

	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestReturnClearsBorrowState(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	require.NoError(t, store.Borrow(id, "Alice"))
	require.NoError(t, store.Return(id))

	var item models.LibraryItem
	require.NoError(t, db.First(&item, id).Error)
	assert.Nil(t, item.Borrower)
	assert.Nil(t, item.BorrowDueDate)

	// Available again for the next borrower.
	assert.NoError(t, store.Borrow(id, "Bob"))
}

func TestReturnNeverBorrowedFails(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	err := store.Return(id)

	var rule *RuleViolationError
	require.ErrorAs(t, err, &rule)
	assert.Contains(t, rule.Message, "not currently borrowed")
}

func TestReturnTwiceFails(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	require.NoError(t, store.Borrow(id, "Alice"))
	require.NoError(t, store.Return(id))
	err := store.Return(id)

	var rule *RuleViolationError
	assert.ErrorAs(t, err, &rule)
}

func TestUpdateWhileBorrowedConflicts(t *testing.T) {
	db := setupTestDB()
	store := NewItemStore(db)
	id := seedItem(t, db, models.TypeDVD)

	require.NoError(t, store.Borrow(id, "Alice"))

	err := store.Update(id, models.LibraryItemInput{
		CategoryID:     1,
		Title:          "Star Wars",
		Type:           models.TypeDVD,
		RunTimeMinutes: int64Ptr(150),
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	// After returning, the same update goes through.
	require.NoError(t, store.Return(id))
	assert.NoError(t, store.Update(id, models.LibraryItemInput{
		CategoryID:     1,
		Title:          "Star Wars",
		Type:           models.TypeDVD,
		RunTimeMinutes: int64Ptr(150),
	}))
}

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"library-catalog/pkg/models"
)

// sortColumns is the fixed allow-list of sort keys. Caller input never
// reaches the ORDER BY clause directly.
var sortColumns = map[string]string{
	"type":     "type",
	"category": "categoryId",
}

const defaultSortColumn = "title"

// ValidSortKey reports whether key is one of the allow-listed sort keys.
func ValidSortKey(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

// ItemStore owns the libraryitem table and the borrow lifecycle.
type ItemStore struct {
	db *gorm.DB
}

func NewItemStore(db *gorm.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Insert persists a new item. It derives isBorrowable from the type and
// always stores a null borrower and due date. The type-dependent field
// policy is applied by the caller, not here.
func (s *ItemStore) Insert(input models.LibraryItemInput) error {
	itemType := strings.ToUpper(strings.TrimSpace(input.Type))
	item := models.LibraryItem{
		CategoryID:     input.CategoryID,
		Title:          strings.TrimSpace(input.Title),
		Type:           itemType,
		Author:         strings.TrimSpace(input.Author),
		Pages:          input.Pages,
		RunTimeMinutes: input.RunTimeMinutes,
		IsBorrowable:   itemType != models.TypeReferenceBook,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return &StorageError{Op: "insert library item", Err: err}
	}
	return nil
}

// List returns all items sorted by the given key. Unknown keys fall back to
// the default title ordering; rejecting them is the caller's job.
func (s *ItemStore) List(sortKey string) ([]models.LibraryItemView, error) {
	column := defaultSortColumn
	if mapped, ok := sortColumns[sortKey]; ok {
		column = mapped
	}

	var items []models.LibraryItem
	if err := s.db.Order(column).Find(&items).Error; err != nil {
		return nil, &StorageError{Op: "list library items", Err: err}
	}
	return viewsOf(items), nil
}

func (s *ItemStore) ListByCategory(categoryID uint) ([]models.LibraryItemView, error) {
	var items []models.LibraryItem
	err := s.db.Where("categoryId = ?", categoryID).Order(defaultSortColumn).Find(&items).Error
	if err != nil {
		return nil, &StorageError{Op: "list library items by category", Err: err}
	}
	return viewsOf(items), nil
}

func (s *ItemStore) GetByID(id uint) (models.LibraryItemView, error) {
	item, err := s.getRecord(id)
	if err != nil {
		return models.LibraryItemView{}, err
	}
	return viewOf(item), nil
}

// Update overwrites all mutable fields of an item. Items cannot be updated
// while borrowed; a successful update always resets the borrow state.
func (s *ItemStore) Update(id uint, input models.LibraryItemInput) error {
	item, err := s.getRecord(id)
	if err != nil {
		return err
	}
	if item.Borrower != nil {
		return &ConflictError{Message: "Library item is currently borrowed"}
	}

	itemType := strings.ToUpper(strings.TrimSpace(input.Type))
	updates := map[string]interface{}{
		"categoryId":     input.CategoryID,
		"title":          strings.TrimSpace(input.Title),
		"type":           itemType,
		"author":         strings.TrimSpace(input.Author),
		"pages":          input.Pages,
		"runTimeMinutes": input.RunTimeMinutes,
		"isBorrowable":   itemType != models.TypeReferenceBook,
		"borrower":       nil,
		"borrowDueDate":  nil,
	}
	err = s.db.Model(&models.LibraryItem{}).Where("id = ?", item.ID).Updates(updates).Error
	if err != nil {
		return &StorageError{Op: "update library item", Err: err}
	}
	return nil
}

func (s *ItemStore) DeleteByID(id uint) error {
	result := s.db.Delete(&models.LibraryItem{}, id)
	if result.Error != nil {
		return &StorageError{Op: "delete library item", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: "Library item does not exist"}
	}
	return nil
}

func (s *ItemStore) getRecord(id uint) (models.LibraryItem, error) {
	var item models.LibraryItem
	err := s.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LibraryItem{}, &NotFoundError{Message: "Library item does not exist"}
	}
	if err != nil {
		return models.LibraryItem{}, &StorageError{Op: "get library item", Err: err}
	}
	return item, nil
}

// Acronymize builds the display abbreviation for a title: the first
// character, every digit, and every non-space character that follows a
// space. The result is "{title} ({abbreviation})".
func Acronymize(title string) string {
	if title == "" {
		return title
	}
	runes := []rune(title)
	var abbr strings.Builder
	for i, r := range runes {
		if i == 0 || unicode.IsDigit(r) || (runes[i-1] == ' ' && r != ' ') {
			abbr.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s (%s)", title, abbr.String())
}

func viewOf(item models.LibraryItem) models.LibraryItemView {
	view := models.LibraryItemView{
		ID:             item.ID,
		CategoryID:     item.CategoryID,
		Title:          Acronymize(item.Title),
		Type:           item.Type,
		Author:         item.Author,
		Pages:          item.Pages,
		RunTimeMinutes: item.RunTimeMinutes,
		IsBorrowable:   item.IsBorrowable,
		Borrower:       item.Borrower,
	}
	if item.BorrowDueDate != nil {
		due := time.Unix(*item.BorrowDueDate, 0).UTC().Format("02/01/2006")
		view.BorrowDueDate = &due
	}
	return view
}

func viewsOf(items []models.LibraryItem) []models.LibraryItemView {
	views := make([]models.LibraryItemView, len(items))
	for i, item := range items {
		views[i] = viewOf(item)
	}
	return views
}

package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"library-catalog/pkg/models"
)

// CategoryStore owns the category table. Category names are unique under
// case-insensitive comparison.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Insert(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := NewValidationError()
		verr.Add("name", "Category name must not be empty")
		return verr
	}

	var count int64
	err := s.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	if err != nil {
		return &StorageError{Op: "count categories", Err: err}
	}
	if count > 0 {
		return &ConflictError{Message: "Category already exists"}
	}

	if err := s.db.Create(&models.Category{Name: name}).Error; err != nil {
		return &StorageError{Op: "insert category", Err: err}
	}
	return nil
}

func (s *CategoryStore) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, &StorageError{Op: "list categories", Err: err}
	}
	return categories, nil
}

func (s *CategoryStore) GetByID(id uint) (models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, &NotFoundError{Message: "Category does not exist"}
	}
	if err != nil {
		return models.Category{}, &StorageError{Op: "get category", Err: err}
	}
	return category, nil
}

func (s *CategoryStore) Update(id uint, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		verr := NewValidationError()
		verr.Add("name", "Category name must not be empty")
		return verr
	}

	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var count int64
	err = s.db.Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?) AND id <> ?", newName, category.ID).
		Count(&count).Error
	if err != nil {
		return &StorageError{Op: "count categories", Err: err}
	}
	if count > 0 {
		return &ConflictError{Message: "Category already exists"}
	}

	err = s.db.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Update("name", newName).Error
	if err != nil {
		return &StorageError{Op: "update category", Err: err}
	}
	return nil
}

func (s *CategoryStore) DeleteByID(id uint) error {
	var count int64
	err := s.db.Model(&models.LibraryItem{}).
		Where("categoryId = ?", id).
		Count(&count).Error
	if err != nil {
		return &StorageError{Op: "count category items", Err: err}
	}
	if count > 0 {
		return &ConflictError{Message: "Category is not empty"}
	}

	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return &StorageError{Op: "delete category", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: "Category does not exist"}
	}
	return nil
}

package catalog

import (
	"fmt"
	"strings"
	"time"

	"library-catalog/pkg/models"
)

// BorrowPeriod is how long an item stays out before it is due back.
const BorrowPeriod = 14 * 24 * time.Hour

// Borrow transitions an item from available to borrowed and stamps the due
// date. The write is conditional on the item still being available, so two
// concurrent borrows resolve to a single winner.
func (s *ItemStore) Borrow(id uint, borrower string) error {
	borrower = strings.TrimSpace(borrower)

	item, err := s.getRecord(id)
	if err != nil {
		return err
	}
	if !item.IsBorrowable {
		return &RuleViolationError{Message: "Library item is not borrowable"}
	}
	if item.Borrower != nil {
		return &RuleViolationError{
			Message: fmt.Sprintf("Library item is already borrowed by %s", *item.Borrower),
		}
	}

	dueDate := time.Now().Add(BorrowPeriod).Unix()
	result := s.db.Model(&models.LibraryItem{}).
		Where("id = ? AND borrower IS NULL", id).
		Updates(map[string]interface{}{
			"borrower":      borrower,
			"borrowDueDate": dueDate,
		})
	if result.Error != nil {
		return &StorageError{Op: "borrow library item", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		// Lost the race to a concurrent borrow.
		if current, err := s.getRecord(id); err == nil && current.Borrower != nil {
			return &RuleViolationError{
				Message: fmt.Sprintf("Library item is already borrowed by %s", *current.Borrower),
			}
		}
		return &RuleViolationError{Message: "Library item is already borrowed"}
	}
	return nil
}

// Return transitions an item back to available, clearing the borrower and
// due date together.
func (s *ItemStore) Return(id uint) error {
	item, err := s.getRecord(id)
	if err != nil {
		return err
	}
	if item.Borrower == nil {
		return &RuleViolationError{Message: "Library item is not currently borrowed"}
	}

	result := s.db.Model(&models.LibraryItem{}).
		Where("id = ? AND borrower IS NOT NULL", id).
		Updates(map[string]interface{}{
			"borrower":      nil,
			"borrowDueDate": nil,
		})
	if result.Error != nil {
		return &StorageError{Op: "return library item", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &RuleViolationError{Message: "Library item is not currently borrowed"}
	}
	return nil
}

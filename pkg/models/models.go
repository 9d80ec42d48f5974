package models

import (
	"strings"
)

const (
	TypeBook          = "BOOK"
	TypeReferenceBook = "REFERENCEBOOK"
	TypeDVD           = "DVD"
	TypeAudioBook     = "AUDIOBOOK"
)

// ParseItemType matches s against the known item types ignoring case and
// surrounding whitespace. It returns the canonical form.
func ParseItemType(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case TypeBook:
		return TypeBook, true
	case TypeReferenceBook:
		return TypeReferenceBook, true
	case TypeDVD:
		return TypeDVD, true
	case TypeAudioBook:
		return TypeAudioBook, true
	}
	return "", false
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;unique"`
}

func (Category) TableName() string { return "category" }

type LibraryItem struct {
	ID             uint    `gorm:"primaryKey"`
	CategoryID     uint    `gorm:"column:categoryId;not null"`
	Title          string  `gorm:"column:title"`
	Type           string  `gorm:"column:type;not null"`
	Author         string  `gorm:"column:author"`
	Pages          *int64  `gorm:"column:pages"`
	RunTimeMinutes *int64  `gorm:"column:runTimeMinutes"`
	IsBorrowable   bool    `gorm:"column:isBorrowable"`
	Borrower       *string `gorm:"column:borrower"`
	BorrowDueDate  *int64  `gorm:"column:borrowDueDate"` // unix epoch seconds
}

func (LibraryItem) TableName() string { return "libraryitem" }

// LibraryItemInput is the unvalidated shape accepted for create and update.
type LibraryItemInput struct {
	CategoryID     uint   `json:"categoryId"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Author         string `json:"author"`
	Pages          *int64 `json:"pages"`
	RunTimeMinutes *int64 `json:"runTimeMinutes"`
}

// LibraryItemView is the read shape: the title carries its acronym suffix
// and the due date is rendered as dd/MM/yyyy.
type LibraryItemView struct {
	ID             uint
	CategoryID     uint
	Title          string
	Type           string
	Author         string
	Pages          *int64
	RunTimeMinutes *int64
	IsBorrowable   bool
	Borrower       *string
	BorrowDueDate  *string
}

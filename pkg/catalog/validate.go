package catalog

import (
	"strings"

	"library-catalog/pkg/models"
)

// ValidateItemInput applies the type-dependent field policy for item create
// and update. An unrecognized type short-circuits every other check; all
// other violations are collected and reported together. A nil result means
// the input is valid.
func ValidateItemInput(input models.LibraryItemInput) *ValidationError {
	errs := NewValidationError()

	itemType, ok := models.ParseItemType(input.Type)
	if !ok {
		errs.Add("type", "Field: Type is invalid "+input.Type)
		return errs
	}

	if strings.TrimSpace(input.Title) == "" {
		errs.Add("title", "Field: Title must not be empty for type: "+itemType)
	}

	if itemType == models.TypeBook || itemType == models.TypeReferenceBook {
		if strings.TrimSpace(input.Author) == "" {
			errs.Add("author", "Field: Author must not be empty for type: "+itemType)
		}
		if input.Pages == nil || *input.Pages <= 0 {
			errs.Add("pages", "Field: Pages is empty or invalid for type: "+itemType)
		}
	} else {
		if input.RunTimeMinutes == nil || *input.RunTimeMinutes <= 0 {
			errs.Add("runTimeMinutes", "Field: RunTimeMinutes is empty or invalid for type: "+itemType)
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

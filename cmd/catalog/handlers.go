package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/pkg/catalog"
	"library-catalog/pkg/models"
)

// respondError translates a core error into the client-facing response.
// Every kind maps to a field->messages body; the field label carries the
// context the caller sent, matching the error shape of the API.
func respondError(c *gin.Context, field string, err error) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}

	var (
		notFound *catalog.NotFoundError
		conflict *catalog.ConflictError
		rule     *catalog.RuleViolationError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &rule):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"errors": map[string][]string{field: {err.Error()}}})
}

func fieldErrors(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": map[string][]string{field: {message}}})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fieldErrors(c, "id", "Field: Id is out of scope")
		return 0, false
	}
	return uint(id), true
}

func itemJSON(view models.LibraryItemView) gin.H {
	return gin.H{
		"id":             view.ID,
		"categoryId":     view.CategoryID,
		"title":          view.Title,
		"type":           view.Type,
		"author":         view.Author,
		"pages":          view.Pages,
		"runTimeMinutes": view.RunTimeMinutes,
		"isBorrowable":   view.IsBorrowable,
		"borrower":       view.Borrower,
		"borrowDueDate":  view.BorrowDueDate,
	}
}

func itemsJSON(views []models.LibraryItemView) []gin.H {
	payload := make([]gin.H, len(views))
	for i, view := range views {
		payload[i] = itemJSON(view)
	}
	return payload
}

func getCategories(c *gin.Context) {
	list, err := categories.List()
	if err != nil {
		respondError(c, "categories", err)
		return
	}
	payload := make([]gin.H, len(list))
	for i, category := range list {
		payload[i] = gin.H{"id": category.ID, "name": category.Name}
	}
	c.JSON(http.StatusOK, payload)
}

func getCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := categories.GetByID(id)
	if err != nil {
		respondError(c, "Category id: "+c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": category.ID, "name": category.Name})
}

func createCategory(c *gin.Context) {
	var request struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		fieldErrors(c, "body", "Invalid request: "+err.Error())
		return
	}
	if err := categories.Insert(request.Name); err != nil {
		respondError(c, "CategoryName: "+request.Name, err)
		return
	}
	c.Header("Location", "/categories")
	c.Status(http.StatusCreated)
}

func updateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var request struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		fieldErrors(c, "body", "Invalid request: "+err.Error())
		return
	}
	if err := categories.Update(id, request.Name); err != nil {
		respondError(c, "Category id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusOK)
}

func deleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := categories.DeleteByID(id); err != nil {
		respondError(c, "Category id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func getCategoryItems(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := categories.GetByID(id); err != nil {
		respondError(c, "Category id: "+c.Param("id"), err)
		return
	}
	views, err := items.ListByCategory(id)
	if err != nil {
		respondError(c, "Category id: "+c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, itemsJSON(views))
}

func getLibraryItems(c *gin.Context) {
	sortKey := strings.ToLower(c.Query("sort"))
	if sortKey != "" && !catalog.ValidSortKey(sortKey) {
		fieldErrors(c, "sort", "Sort query does not match available sorting types ['type', 'category']")
		return
	}
	views, err := items.List(sortKey)
	if err != nil {
		respondError(c, "libraryitems", err)
		return
	}
	c.JSON(http.StatusOK, itemsJSON(views))
}

func getLibraryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := items.GetByID(id)
	if err != nil {
		respondError(c, "LibraryItem id: "+c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, itemJSON(view))
}

// checkCategoryExists enforces the referential side of item writes: the
// category must exist before an item may point at it.
func checkCategoryExists(c *gin.Context, categoryID uint) bool {
	_, err := categories.GetByID(categoryID)
	if err == nil {
		return true
	}
	var notFound *catalog.NotFoundError
	if errors.As(err, &notFound) {
		fieldErrors(c, "categoryId", "Field: CategoryId does not reference an existing category")
		return false
	}
	respondError(c, "categoryId", err)
	return false
}

func createLibraryItem(c *gin.Context) {
	var input models.LibraryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fieldErrors(c, "body", "Invalid request: "+err.Error())
		return
	}
	if verr := catalog.ValidateItemInput(input); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}
	if !checkCategoryExists(c, input.CategoryID) {
		return
	}
	if err := items.Insert(input); err != nil {
		respondError(c, "libraryItemInput", err)
		return
	}
	c.Header("Location", "/libraryitems")
	c.Status(http.StatusCreated)
}

func updateLibraryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input models.LibraryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fieldErrors(c, "body", "Invalid request: "+err.Error())
		return
	}
	if verr := catalog.ValidateItemInput(input); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
		return
	}
	if !checkCategoryExists(c, input.CategoryID) {
		return
	}
	if err := items.Update(id, input); err != nil {
		respondError(c, "LibraryItem id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusOK)
}

func borrowLibraryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var request struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		fieldErrors(c, "body", "Invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		fieldErrors(c, "name", "Field: Name is empty")
		return
	}
	if err := items.Borrow(id, request.Name); err != nil {
		respondError(c, "LibraryItem id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusOK)
}

func returnLibraryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := items.Return(id); err != nil {
		respondError(c, "LibraryItem id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusOK)
}

func deleteLibraryItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := items.DeleteByID(id); err != nil {
		respondError(c, "LibraryItem id: "+c.Param("id"), err)
		return
	}
	c.Status(http.StatusNoContent)
}

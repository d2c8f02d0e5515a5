package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/store"
)

// Handlers struct holds all dependencies for our handlers.
// Store is the persistence backend picked at process start (memory or MySQL);
// handlers never know which one they are talking to.
type Handlers struct {
	Store store.Store
}

// idParam reads the ":id" URL parameter. On a malformed value it writes the
// 400 response itself and reports false.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// storeError translates store sentinels into the HTTP responses the API
// promises: 404 for missing records, 400 for rejected status values and bad
// user references, 409 for uniqueness collisions, 500 for everything else.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
	case errors.Is(err, store.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced user does not exist"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "A record with that value already exists"})
	case errors.Is(err, store.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "Record is referenced by other records"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createError is storeError for create paths, where a missing record means
// the request referenced something that does not exist: that is the
// caller's fault, not a lookup miss.
func createError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced record does not exist"})
		return
	}
	storeError(c, err)
}

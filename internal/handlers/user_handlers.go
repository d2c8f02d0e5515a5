package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/auth"
	"github.com/shopadmin/shopadmin-golang/internal/models"
	"github.com/shopadmin/shopadmin-golang/internal/store"
)

// Login is the handler for POST /api/login. It checks the username and
// password and returns a signed token plus the user (hash never serializes).
func (h *Handlers) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.GetUserByUsername(input.Username)
	if err != nil {
		// A missing user and a wrong password produce the same response,
		// so the endpoint never confirms which usernames exist.
		if err == store.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		storeError(c, err)
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// CreateUser is the handler for POST /api/users (staff accounts).
func (h *Handlers) CreateUser(c *gin.Context) {
	var input models.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Store.CreateUser(input)
	if err != nil {
		createError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionMaxAge = 60 * 60 * 24 * 7 // 1 week

type AuthController struct {
	DB         *gorm.DB
	Dispatcher *services.Dispatcher
}

func NewAuthController(db *gorm.DB, dispatcher *services.Dispatcher) *AuthController {
	return &AuthController{DB: db, Dispatcher: dispatcher}
}

func (ac *AuthController) Signup(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed. Please try again."})
		return
	}

	// Role is always forced to user here, never taken from the caller.
	user := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed. Please try again."})
		return
	}

	ac.Dispatcher.Enqueue(services.NewWelcomeNotification(user.Email, user.Name))

	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful"})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	claim, err := json.Marshal(utils.SessionClaim{ID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
		return
	}

	// SetCookie URL-escapes the JSON payload once; the resolver also
	// tolerates doubly-escaped values from older clients.
	c.SetCookie(utils.SessionCookieName, string(claim), sessionMaxAge, "/", "", false, false)

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ac *AuthController) Me(c *gin.Context) {
	identity := utils.GetIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": identity.UserID, "email": identity.Email, "role": identity.Role})
}

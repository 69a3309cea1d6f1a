package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/notification"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// Controller bundles the dependencies of the authentication endpoints.
type Controller struct {
	DB     *database.DBinstanceStruct
	Log    *zap.Logger
	Mailer notification.Sender
}

// NewController creates a new instance of auth Controller.
func NewController(db *database.DBinstanceStruct, log *zap.Logger, mailer notification.Sender) *Controller {
	return &Controller{DB: db, Log: log, Mailer: mailer}
}

// RegisterHandler function handles local registration by receiving username,
// password and role. Rejects usernames already in the database and passwords
// shorter than 8 characters.
//
//	@Summary		Register
//	@Description	Register a new worker or employer account
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		201
//	@Failure		400	{object}	utilities.ErrorResponse
//	@Router			/auth/register [post]
func (ctrl *Controller) RegisterHandler(c *gin.Context) {
	var info struct {
		Username  string  `json:"username" binding:"required"`
		Password  string  `json:"password" binding:"required"`
		Role      string  `json:"role" binding:"required,oneof=worker employer"`
		Email     *string `json:"email" binding:"omitempty,email"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username, password, and Role (Only 'worker' or 'employer') must be provided",
		})
		return
	}

	var existing model.User
	err := ctrl.DB.Where("username = ?", info.Username).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username already exist",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Username:  info.Username,
		Password:  hashedPassword,
		Role:      info.Role,
		Email:     info.Email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	if user.Email != nil {
		go ctrl.sendWelcomeEmail(user)
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"access_token": accessToken,
	})
}

// LoginHandler function handles local login by receiving username and password.
//
//	@Summary		Login
//	@Description	Login with username and password
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Success		200
//	@Failure		401	{object}	utilities.ErrorResponse
//	@Router			/auth/login [post]
func (ctrl *Controller) LoginHandler(c *gin.Context) {
	var info struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username or password is not provided",
		})
		return
	}

	var user model.User
	err := ctrl.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Incorrect username or password",
		})
		return

	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if !utilities.CheckPassword(user.Password, info.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Incorrect username or password",
		})
		return
	}

	accessToken, _, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"access_token": accessToken,
	})
}

func (ctrl *Controller) sendWelcomeEmail(user model.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Sign in to start using HireMe.", user.Username)
	if err := ctrl.Mailer.Send(ctx, *user.Email, "Welcome to HireMe", body); err != nil {
		ctrl.Log.Warn("welcome email failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

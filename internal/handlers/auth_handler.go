package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/auth"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/validators"
)

type AuthHandler struct {
	db  *gorm.DB
	svc *auth.Service
}

func NewAuthHandler(db *gorm.DB, svc *auth.Service) *AuthHandler {
	return &AuthHandler{db: db, svc: svc}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName    string `json:"barbershop_name" binding:"required"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`
	Timezone          string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required"`
}

// isDuplicateEmail reports whether err is the translated unique
// violation on users.email. Emails are stored lowercased, so the plain
// unique index covers the case-insensitive rule.
func isDuplicateEmail(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// --------- Handlers ---------

// Register provisions a barbershop and its first admin in one flow,
// then logs the admin in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, httperr.CodeValidation, "email domain does not resolve")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, httperr.CodeValidation, "email already registered")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = "America/Sao_Paulo"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to hash password")
		return
	}

	shop := models.Barbershop{
		Name:     req.BarbershopName,
		Phone:    req.BarbershopPhone,
		Address:  req.BarbershopAddress,
		Timezone: tz,
		IsActive: true,
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         roles.Admin,
		IsActive:     true,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}
		user.TenantID = &shop.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		// A concurrent registration can slip past the count above; the
		// unique index on users.email reports it here.
		if isDuplicateEmail(err) {
			httperr.Conflict(c, httperr.CodeValidation, "email already registered")
			return
		}
		httperr.Internal(c, httperr.CodePersistence, "failed to register barbershop")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), email, req.Password, roles.Admin)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"user":       result.User,
		"barbershop": shop,
		"token":      result.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "invalid request payload")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, req.UserType)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if err := h.svc.Logout(c.Request.Context(), parts[1]); err != nil {
			httperr.Internal(c, httperr.CodePersistence, "failed to end session")
			return
		}
	}

	httpresp.OK(c, gin.H{"message": "logged out"})
}

// Me returns the caller's user record and session grants.
func (h *AuthHandler) Me(c *gin.Context) {
	var user models.User
	if err := h.db.Where("id = ?", middleware.UserID(c)).First(&user).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "user not found")
		return
	}

	httpresp.OK(c, gin.H{
		"user":        user,
		"role":        middleware.Role(c),
		"permissions": middleware.Permissions(c),
	})
}

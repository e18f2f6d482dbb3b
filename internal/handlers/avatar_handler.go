package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
	"github.com/BruksfildServices01/barber-platform/internal/media"
	"github.com/BruksfildServices01/barber-platform/internal/middleware"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
)

// 5 MiB before decoding; the stored webp is far smaller.
const maxAvatarUpload = 5 << 20

type AvatarHandler struct {
	db       *gorm.DB
	uploader *media.AvatarUploader
}

func NewAvatarHandler(db *gorm.DB, uploader *media.AvatarUploader) *AvatarHandler {
	return &AvatarHandler{db: db, uploader: uploader}
}

// UploadUserAvatar accepts a multipart "avatar" file. Users may only
// change their own avatar unless they are admins.
func (h *AvatarHandler) UploadUserAvatar(c *gin.Context) {
	targetID := c.Param("id")
	role := middleware.Role(c)
	if targetID != middleware.UserID(c) && role != roles.Admin && role != roles.SuperAdmin {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	var user models.User
	if err := h.db.Where("id = ?", targetID).First(&user).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "user not found")
		return
	}

	url, ok := h.store(c, "users")
	if !ok {
		return
	}

	user.Avatar = url
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update avatar")
		return
	}

	httpresp.OK(c, gin.H{"avatar": url})
}

func (h *AvatarHandler) UploadBarberAvatar(c *gin.Context) {
	tenant, ok := middleware.TenantID(c)
	if !ok {
		httperr.Forbidden(c, httperr.CodeAccessDenied, "access denied")
		return
	}

	var barber models.Barber
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenant).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "barber not found")
		return
	}

	url, stored := h.store(c, "barbers")
	if !stored {
		return
	}

	barber.Avatar = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to update avatar")
		return
	}

	httpresp.OK(c, gin.H{"avatar": url})
}

func (h *AvatarHandler) store(c *gin.Context, scope string) (string, bool) {
	if h.uploader == nil {
		httperr.BadRequest(c, httperr.CodeUnsupported, "avatar storage is not configured")
		return "", false
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "avatar file is required")
		return "", false
	}
	if file.Size > maxAvatarUpload {
		httperr.BadRequest(c, httperr.CodeValidation, "avatar file too large")
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, httperr.CodePersistence, "failed to read avatar")
		return "", false
	}
	defer src.Close()

	url, err := h.uploader.Upload(c.Request.Context(), scope, src)
	if err != nil {
		httperr.FromError(c, err)
		return "", false
	}
	return url, true
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/duet-dev/duet/db"
	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/types"
	"github.com/duet-dev/duet/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

func profileResponse(profile models.Profile) types.ProfileResponse {
	response := types.ProfileResponse{
		ID:             profile.ID,
		Username:       profile.Username,
		RelationshipID: profile.RelationshipID,
		InviteCode:     profile.InviteCode,
	}

	if len(profile.ThemeConfig) > 0 {
		var theme map[string]any
		if err := json.Unmarshal(profile.ThemeConfig, &theme); err == nil {
			response.ThemeConfig = theme
		}
	}

	return response
}

func GetProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.First(&profile, userID).Error; err != nil {
		log.Printf("Failed to fetch profile for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

// UpdateTheme persists the theme blob as-is. The server treats it as opaque,
// only the client interprets it.
func UpdateTheme(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var theme map[string]any

	if err := ctx.BindJSON(&theme); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme config"})
		return
	}

	blob, err := json.Marshal(theme)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme config"})
		return
	}

	result := db.DB.Model(&models.Profile{}).Where("id = ?", userID).Update("theme_config", datatypes.JSON(blob))

	if result.Error != nil {
		log.Printf("Failed to update theme for user %d: %v", userID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Theme saved"})
}

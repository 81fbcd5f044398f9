package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/duet-dev/duet/db"
	"github.com/duet-dev/duet/internal/pairing"
	"github.com/duet-dev/duet/internal/shared"
	"github.com/duet-dev/duet/internal/utils"
	"github.com/gin-gonic/gin"
)

type JoinRequest struct {
	Code string `json:"code" binding:"required"`
}

func GenerateInviteCode(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	code, err := pairing.NewService(db.DB).IssueInviteCode(userID)

	if err != nil {
		if errors.Is(err, shared.ErrUnauthenticated) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}
		log.Printf("Failed to issue invite code for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invite code"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"invite_code": code})
}

func JoinRelationship(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body JoinRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	relationshipID, err := pairing.NewService(db.DB).JoinByCode(userID, body.Code)

	if err != nil {
		switch {
		case errors.Is(err, shared.ErrUnauthenticated):
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		case errors.Is(err, shared.ErrInvalidCode):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invite code"})
		case errors.Is(err, shared.ErrSelfJoin):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot invite yourself"})
		case errors.Is(err, shared.ErrAlreadyPaired):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already in a relationship"})
		default:
			log.Printf("Failed to join by code for user %d: %v", userID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link users"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"relationship_id": relationshipID})
}

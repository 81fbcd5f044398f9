package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/duet-dev/duet/db"
	"github.com/duet-dev/duet/internal/entries"
	"github.com/duet-dev/duet/internal/models"
	"github.com/duet-dev/duet/internal/shared"
	"github.com/duet-dev/duet/internal/types"
	"github.com/duet-dev/duet/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateEntryRequest struct {
	Content string `json:"content"`
}

type UpdateEntryRequest struct {
	Content   *string `json:"content"`
	IsPrivate *bool   `json:"is_private"`
}

func entryResponse(entry models.Entry) types.EntryResponse {
	return types.EntryResponse{
		ID:             entry.ID,
		UserID:         entry.UserID,
		RelationshipID: entry.RelationshipID,
		Content:        entry.Content,
		IsPrivate:      entry.IsPrivate,
		WordCount:      entry.WordCount,
		CharCount:      entry.CharCount,
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}

func CreateEntry(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateEntryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entry, err := entries.NewService(db.DB).Create(userID, body.Content)

	if err != nil {
		if errors.Is(err, shared.ErrNoRelationship) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No relationship found"})
			return
		}
		log.Printf("Failed to create entry for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	BroadcastRelationshipRefresh(entry.RelationshipID)

	ctx.JSON(http.StatusCreated, entryResponse(*entry))
}

func ListEntries(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := entries.NewService(db.DB).List(userID)

	if err != nil {
		log.Printf("Failed to list entries for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entries"})
		return
	}

	response := make([]types.EntryResponse, 0, len(list))

	for _, entry := range list {
		response = append(response, entryResponse(entry))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetEntry(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID, err := utils.GetEntryID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := entries.NewService(db.DB).Get(userID, entryID)

	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to fetch entry %d for user %d: %v", entryID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	ctx.JSON(http.StatusOK, entryResponse(*entry))
}

func UpdateEntry(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID, err := utils.GetEntryID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateEntryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entry, err := entries.NewService(db.DB).Update(userID, entryID, entries.UpdateFields{
		Content:   body.Content,
		IsPrivate: body.IsPrivate,
	})

	if err != nil {
		// Forbidden and NotFound collapse to one answer on the wire, a
		// non-owner learns nothing about the entry's existence.
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to update entry %d for user %d: %v", entryID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save entry"})
		return
	}

	BroadcastRelationshipRefresh(entry.RelationshipID)

	ctx.JSON(http.StatusOK, entryResponse(*entry))
}

func DeleteEntry(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entryID, err := utils.GetEntryID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := entries.NewService(db.DB)

	entry, getErr := service.Get(userID, entryID)

	if err := service.Delete(userID, entryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		log.Printf("Failed to delete entry %d for user %d: %v", entryID, userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	if getErr == nil {
		BroadcastRelationshipRefresh(entry.RelationshipID)
	}

	ctx.Status(http.StatusNoContent)
}

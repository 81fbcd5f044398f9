package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetEntryID(ctx *gin.Context) (uint, error) {
	var err error

	entryIDStr := ctx.Param("entry_id")

	if entryIDStr == "" {
		return 0, errors.New("Entry ID not found")
	}

	entryID, err := strconv.ParseUint(entryIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Entry ID")
	}

	return uint(entryID), nil
}

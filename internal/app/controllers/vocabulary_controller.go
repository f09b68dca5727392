package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sharesuki/internal/app/models/dto"
)

// VocabularyController serves the entry form suggestion lists
type VocabularyController struct{}

// NewVocabularyController creates a new VocabularyController
func NewVocabularyController() *VocabularyController {
	return &VocabularyController{}
}

// GetVocabulary returns suggested skills, classes, genders and availability windows
// @Summary Suggestion lists
// @Tags vocabulary
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.VocabularyResponse} "Suggestions"
// @Router /vocabulary [get]
func (c *VocabularyController) GetVocabulary(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewVocabularyResponse(), ""))
}

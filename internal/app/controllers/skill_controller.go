package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/app/repositories"
	"github.com/yigit/sharesuki/internal/app/services"
	"github.com/yigit/sharesuki/internal/middleware"
	"github.com/yigit/sharesuki/internal/pkg/helpers"
)

// SkillController handles skill record operations
type SkillController struct {
	skillService services.SkillService
}

// NewSkillController creates a new SkillController
func NewSkillController(skillService services.SkillService) *SkillController {
	return &SkillController{
		skillService: skillService,
	}
}

// CreateSkill registers a new skill record
// @Summary Register a skill record
// @Description Stores the record and queues a mutual match notification pass
// @Tags skills
// @Accept json
// @Produce json
// @Param request body dto.SkillRecordRequest true "Skill record"
// @Success 201 {object} dto.APIResponse{data=dto.CreatedResponse} "Skill record registered"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req dto.SkillRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.skillService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.CreatedResponse{ID: id}, "Skill record registered successfully"))
}

// ListSkills lists or searches skill records, newest first
// @Summary List skill records
// @Tags skills
// @Produce json
// @Param q query string false "Substring of name, skills or class"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Skill records"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	var query dto.SkillSearchRequest
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	records, err := c.skillService.Search(ctx.Request.Context(), repositories.SkillFilter{Query: query.Query})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	start, end := helpers.CalculateSliceIndices(page, size, len(records))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      records[start:end],
		Pagination: helpers.NewPaginationInfo(len(records), page, size),
	}, ""))
}

// GetSkill retrieves one skill record
// @Summary Get a skill record
// @Tags skills
// @Produce json
// @Param id path int true "Skill record ID"
// @Success 200 {object} dto.APIResponse{data=models.SkillRecord} "Skill record"
// @Failure 400 {object} dto.APIResponse "Invalid ID"
// @Failure 404 {object} dto.APIResponse "Skill record not found"
// @Router /skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, err := c.skillService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, ""))
}

// UpdateSkill overwrites a skill record
// @Summary Update a skill record
// @Description Replaces every editable field and queues a new notification pass
// @Tags skills
// @Accept json
// @Produce json
// @Param id path int true "Skill record ID"
// @Param request body dto.SkillRecordRequest true "Skill record"
// @Success 200 {object} dto.APIResponse{data=models.SkillRecord} "Skill record updated"
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 404 {object} dto.APIResponse "Skill record not found"
// @Router /skills/{id} [put]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SkillRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.skillService.Update(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	record, err := c.skillService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(record, "Skill record updated successfully"))
}

// DeleteSkill removes a skill record
// @Summary Delete a skill record
// @Tags skills
// @Produce json
// @Param id path int true "Skill record ID"
// @Success 200 {object} dto.APIResponse "Skill record deleted"
// @Failure 404 {object} dto.APIResponse "Skill record not found"
// @Router /skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.skillService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Skill record deleted successfully"))
}

// GetMatches lists supply, demand and mutual matches of a record
// @Summary Get matches for a skill record
// @Tags skills
// @Produce json
// @Param id path int true "Skill record ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchResultResponse} "Matches"
// @Failure 404 {object} dto.APIResponse "Skill record not found"
// @Router /skills/{id}/matches [get]
func (c *SkillController) GetMatches(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.skillService.FindMatches(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

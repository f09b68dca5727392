package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/sharesuki/internal/app/models/dto"
	"github.com/yigit/sharesuki/internal/app/services"
	"github.com/yigit/sharesuki/internal/middleware"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

// BulkDispatcher queues a full matching run
type BulkDispatcher interface {
	DispatchNotifyAll() (uuid.UUID, error)
}

// QueueStatsProvider reports background queue counters
type QueueStatsProvider interface {
	Stats() taskqueue.Stats
}

// MatchingController handles manual notification triggers
type MatchingController struct {
	notifier     services.NotificationService
	skillService services.SkillService
	dispatcher   BulkDispatcher
	queue        QueueStatsProvider
}

// NewMatchingController creates a new MatchingController
func NewMatchingController(
	notifier services.NotificationService,
	skillService services.SkillService,
	dispatcher BulkDispatcher,
	queue QueueStatsProvider,
) *MatchingController {
	return &MatchingController{
		notifier:     notifier,
		skillService: skillService,
		dispatcher:   dispatcher,
		queue:        queue,
	}
}

// NotifyMutualMatches runs a notification pass for one record and waits for it
// @Summary Notify mutual matches of a record
// @Description Emails the record and each of its mutual matches. An unknown record notifies nobody.
// @Tags matching
// @Produce json
// @Param id path int true "Skill record ID"
// @Success 200 {object} dto.APIResponse{data=dto.NotifyResultResponse} "Notification pass finished"
// @Failure 400 {object} dto.APIResponse "Invalid ID"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /matching/{id}/notify [post]
func (c *MatchingController) NotifyMutualMatches(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	notified, err := c.notifier.NotifyMutualMatches(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotifyResultResponse{
		SubjectID:     id,
		NotifiedCount: len(notified),
		Notified:      notified,
	}, ""))
}

// NotifyAll queues a full matching run over every record
// @Summary Run full matching
// @Tags matching
// @Produce json
// @Success 202 {object} dto.APIResponse{data=dto.JobAcceptedResponse} "Run queued"
// @Failure 503 {object} dto.APIResponse "Queue unavailable"
// @Router /matching/notify-all [post]
func (c *MatchingController) NotifyAll(ctx *gin.Context) {
	jobID, err := c.dispatcher.DispatchNotifyAll()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse(dto.JobAcceptedResponse{JobID: jobID}, "Full matching run queued"))
}

// GetStats reports the record count and background queue counters
// @Summary Matching statistics
// @Tags matching
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Statistics"
// @Router /matching/stats [get]
func (c *MatchingController) GetStats(ctx *gin.Context) {
	count, err := c.skillService.Count(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StatsResponse{
		Records: count,
		Queue:   c.queue.Stats(),
	}, ""))
}

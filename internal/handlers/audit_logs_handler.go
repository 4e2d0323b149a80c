package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewAuditLogsHandler(db *gorm.DB, repo domain.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, repo: repo}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	restaurant, err := h.repo.FindActiveRestaurant(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err, "audit_list_failed")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always scoped to the restaurant
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("restaurant_id = ?", restaurant.ID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if raw := c.Query("entity_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q = q.Where("entity_id = ?", id)
		}
	}

	if from, err := time.Parse(domain.DateLayout, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := time.Parse(domain.DateLayout, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/audit"
	"github.com/yeremiapane/ambatoeat-api/reports"
	"github.com/yeremiapane/ambatoeat-api/services"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

const historyLimit = 100

type AdminController struct {
	Reservations *services.ReservationService
	// Audit is nil when no audit storage is configured.
	Audit audit.Reader
}

func NewAdminController(reservations *services.ReservationService, auditReader audit.Reader) *AdminController {
	return &AdminController{Reservations: reservations, Audit: auditReader}
}

// GetDashboardStats -> reservation and table counters
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Reservations.Stats(c.Request.Context())
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", stats)
}

// ExportReservations -> ?format=csv (default) or pdf
func (ac *AdminController) ExportReservations(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "pdf" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Format must be csv or pdf"))
		return
	}

	list, err := ac.Reservations.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}

	now := time.Now()
	filename := fmt.Sprintf("reservations-%s.%s", now.Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if format == "pdf" {
		out, err := reports.PDF("AmbatoEat Reservations", list, now)
		if err != nil {
			utils.RespondServerError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/pdf", out)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, list); err != nil {
		utils.RespondServerError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetReservationHistory -> audit entries for one reservation, newest first
func (ac *AdminController) GetReservationHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := int64(historyLimit)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= historyLimit {
			limit = n
		}
	}

	// hard-deleted reservations keep their history, so no existence check here
	if ac.Audit == nil {
		utils.RespondJSON(c, http.StatusOK, "", []audit.Entry{})
		return
	}

	entries, err := ac.Audit.History(c.Request.Context(), id, limit)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", entries)
}

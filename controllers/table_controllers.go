package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/services"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// GetAllTables -> every table ordered by number
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context())
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", tables)
}

// GetAvailableTables -> tables free at ?date=
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Date parameter is required"))
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tables, err := tc.Tables.Available(c.Request.Context(), date)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", tables)
}

// CreateTable -> adds a table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber flexInt `json:"tableNumber"`
		Capacity    flexInt `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrTableFieldsRequired)
		return
	}

	table, err := tc.Tables.Create(c.Request.Context(), int(req.TableNumber), int(req.Capacity))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> changes number, capacity or status
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TableNumber *flexInt `json:"tableNumber"`
		Capacity    *flexInt `json:"capacity"`
		Status      *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Update(c.Request.Context(), id, services.TableUpdate{
		TableNumber: req.TableNumber.intPtr(),
		Capacity:    req.Capacity.intPtr(),
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// DeleteTable -> removes a table without active reservations
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.Tables.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}

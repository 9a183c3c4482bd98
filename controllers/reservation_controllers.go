package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/middlewares"
	"github.com/yeremiapane/ambatoeat-api/services"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// CreateReservation -> books a table for the caller
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		TableID         flexInt `json:"tableId"`
		ReservationDate string  `json:"reservationDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.TableID <= 0 || req.ReservationDate == "" {
		utils.RespondError(c, http.StatusBadRequest, services.ErrReservationFieldsRequired)
		return
	}

	date, err := parseDate(req.ReservationDate)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id, _ := middlewares.GetIdentity(c)
	res, err := rc.Reservations.Create(c.Request.Context(), id.UserID, uint(req.TableID), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", res)
}

// GetUserReservations -> the caller's reservations that were not canceled
func (rc *ReservationController) GetUserReservations(c *gin.Context) {
	id, _ := middlewares.GetIdentity(c)
	list, err := rc.Reservations.ListMine(c.Request.Context(), id.UserID)
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", list)
}

// GetAllReservations -> every reservation with table and guest
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	list, err := rc.Reservations.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondServerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "", list)
}

// CancelReservation -> soft delete by the owner or an admin
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	resID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	id, _ := middlewares.GetIdentity(c)
	res, err := rc.Reservations.SoftCancel(c.Request.Context(), resID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation canceled successfully", res)
}

// DeleteReservation -> hard delete, admin only
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	resID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	id, _ := middlewares.GetIdentity(c)
	if err := rc.Reservations.HardDelete(c.Request.Context(), resID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}

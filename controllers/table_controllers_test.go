package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/models"
)

func TestGetAllTables(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)
	env.createTable(t, 5, models.TableAvailable)
	env.createTable(t, 1, models.TableMaintenance)

	w := env.do(http.MethodGet, "/api/tables", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := dataList(t, w)
	require.Len(t, list, 2)
	assert.Equal(t, float64(1), list[0].(map[string]interface{})["tableNumber"])
	assert.Equal(t, float64(5), list[1].(map[string]interface{})["tableNumber"])
}

func TestGetAvailableTables(t *testing.T) {
	env := setupTestEnv(t)
	user, token := env.createUser(t, "u@test.com", models.RoleUser)
	held := env.createTable(t, 1, models.TableAvailable)
	env.createTable(t, 2, models.TableMaintenance)
	env.createTable(t, 3, models.TableAvailable)

	at := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	require.NoError(t, env.DB.Create(&models.Reservation{
		UserID: user.ID, TableID: held.ID, ReservationDate: at, Status: models.ReservationActive,
	}).Error)

	w := env.do(http.MethodGet, "/api/tables/available", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Date parameter is required", decodeBody(t, w)["message"])

	w = env.do(http.MethodGet, "/api/tables/available?date=not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/tables/available?date="+slot, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, float64(3), list[0].(map[string]interface{})["tableNumber"])

	// a different instant on the same day does not collide
	w = env.do(http.MethodGet, "/api/tables/available?date=2025-06-01T20:00:00Z", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, w), 2)
}

func TestTablesRequireAuth(t *testing.T) {
	env := setupTestEnv(t)
	_, userToken := env.createUser(t, "u@test.com", models.RoleUser)

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/tables", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/tables", userToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPost, "/api/tables", userToken, map[string]int{"tableNumber": 1, "capacity": 2}).Code)
}

func TestCreateUpdateDeleteTable(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)

	w := env.do(http.MethodPost, "/api/tables", adminToken, map[string]int{"tableNumber": 7, "capacity": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Table created successfully", decodeBody(t, w)["message"])
	id := dataObject(t, w)["id"]

	w = env.do(http.MethodPost, "/api/tables", adminToken, map[string]int{"tableNumber": 7, "capacity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Table number already exists", decodeBody(t, w)["message"])

	w = env.do(http.MethodPost, "/api/tables", adminToken, map[string]int{"capacity": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Table number and capacity are required", decodeBody(t, w)["message"])

	w = env.do(http.MethodPut, fmt.Sprintf("/api/tables/%v", id), adminToken, map[string]interface{}{"status": "MAINTENANCE", "capacity": 6})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataObject(t, w)
	assert.Equal(t, "MAINTENANCE", data["status"])
	assert.Equal(t, float64(6), data["capacity"])

	w = env.do(http.MethodPut, "/api/tables/999", adminToken, map[string]interface{}{"capacity": 6})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/tables/%v", id), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Table deleted successfully", decodeBody(t, w)["message"])

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/tables/%v", id), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTableWithActiveReservation(t *testing.T) {
	env := setupTestEnv(t)
	_, userToken := env.createUser(t, "u@test.com", models.RoleUser)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)
	tbl := env.createTable(t, 3, models.TableAvailable)

	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/reservations", userToken,
		map[string]interface{}{"tableId": tbl.ID, "reservationDate": slot}).Code)

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/tables/%d", tbl.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete table with active reservations", decodeBody(t, w)["message"])
}

func TestTableNumbersAsStrings(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)

	w := env.do(http.MethodPost, "/api/tables", adminToken, map[string]string{"tableNumber": "7", "capacity": "4"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataObject(t, w)
	assert.Equal(t, float64(7), created["tableNumber"])
	assert.Equal(t, float64(4), created["capacity"])

	w = env.do(http.MethodPut, fmt.Sprintf("/api/tables/%v", created["id"]), adminToken, map[string]string{"tableNumber": "9", "capacity": "6"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := dataObject(t, w)
	assert.Equal(t, float64(9), updated["tableNumber"])
	assert.Equal(t, float64(6), updated["capacity"])

	w = env.do(http.MethodPost, "/api/tables", adminToken, map[string]string{"tableNumber": "seven", "capacity": "4"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTableKeepsReservationHistory(t *testing.T) {
	env := setupTestEnv(t)
	_, userToken := env.createUser(t, "u@test.com", models.RoleUser)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)
	tbl := env.createTable(t, 3, models.TableAvailable)

	w := env.do(http.MethodPost, "/api/reservations", userToken, map[string]interface{}{"tableId": tbl.ID, "reservationDate": slot})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, http.StatusOK, env.do(http.MethodDelete, fmt.Sprintf("/api/reservations/user/%v", dataObject(t, w)["id"]), userToken, nil).Code)

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/tables/%d", tbl.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete table with reservation history", decodeBody(t, w)["message"])

	w = env.do(http.MethodGet, "/api/reservations", adminToken, nil)
	assert.Len(t, dataList(t, w), 1)
}

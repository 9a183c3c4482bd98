package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/database"
	"github.com/yeremiapane/ambatoeat-api/events"
	"github.com/yeremiapane/ambatoeat-api/middlewares"
	"github.com/yeremiapane/ambatoeat-api/models"
	"github.com/yeremiapane/ambatoeat-api/router"
	"github.com/yeremiapane/ambatoeat-api/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Recorder *events.Recorder
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	rec := &events.Recorder{}
	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Publishers:  []events.Publisher{rec},
		Uploader:    utils.NewUploader(t.TempDir(), 1024*1024),
		AuthLimiter: middlewares.NewRateLimiter(rate.Inf, 1),
	})
	return &testEnv{DB: db, Router: r, Recorder: rec}
}

func (e *testEnv) createUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Name: "Test " + role, Email: email, Password: string(hashed), Phone: "0812000", Role: role}
	require.NoError(t, e.DB.Create(&u).Error)

	token, err := utils.GenerateToken(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) createTable(t *testing.T, number int, status string) models.Table {
	t.Helper()
	tbl := models.Table{TableNumber: number, Capacity: 4, Status: status}
	require.NoError(t, e.DB.Create(&tbl).Error)
	return tbl
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func dataList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	data, ok := decodeBody(t, w)["data"].([]interface{})
	require.True(t, ok, w.Body.String())
	return data
}

func dataObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return data
}


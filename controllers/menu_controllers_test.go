package controllers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/ambatoeat-api/models"
)

func TestMenuCRUD(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)
	_, userToken := env.createUser(t, "u@test.com", models.RoleUser)

	item := map[string]interface{}{
		"name": "Es Teh", "description": "Sweet iced tea", "price": 8000, "category": "drink", "image": "https://img.test/teh.png",
	}
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPost, "/api/menu", userToken, item).Code)

	w := env.do(http.MethodPost, "/api/menu", adminToken, item)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := dataObject(t, w)
	assert.Equal(t, "DRINK", created["category"])

	w = env.do(http.MethodPost, "/api/menu", adminToken, map[string]interface{}{"name": "Nasi Goreng", "category": "FOOD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/menu", adminToken, map[string]interface{}{
		"name": "Soup", "description": "d", "price": 1, "category": "SOUP", "image": "x.png",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// public list, then a write must invalidate the cached copy
	w = env.do(http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataList(t, w), 1)

	w = env.do(http.MethodPut, fmt.Sprintf("/api/menu/%v", created["id"]), adminToken, map[string]interface{}{"price": 9000})
	require.Equal(t, http.StatusOK, w.Code)
	updated := dataObject(t, w)
	assert.Equal(t, float64(9000), updated["price"])
	assert.Equal(t, "Es Teh", updated["name"])

	w = env.do(http.MethodGet, "/api/menu/category/drink", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := dataList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, float64(9000), list[0].(map[string]interface{})["price"])

	w = env.do(http.MethodGet, "/api/menu/category/SOUP", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category. Must be FOOD, DRINK, or DESSERT", decodeBody(t, w)["message"])

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/menu/%v", created["id"]), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/menu", "", nil)
	assert.Empty(t, dataList(t, w))

	w = env.do(http.MethodDelete, fmt.Sprintf("/api/menu/%v", created["id"]), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartRequest(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		fw.Write([]byte("fake image bytes"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateMenuWithUpload(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)
	fields := map[string]string{"name": "Brownies", "description": "Chocolate", "price": "15000", "category": "DESSERT"}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/menu", adminToken, fields, "image", "cake.png"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `^/uploads/menu/menu-\d+-[0-9a-f]{8}\.png$`, dataObject(t, w)["image"])

	w = httptest.NewRecorder()
	env.Router.ServeHTTP(w, multipartRequest(t, http.MethodPost, "/api/menu", adminToken, fields, "image", "cake.gif"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuRejectsImagePathOutsideUploads(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := env.createUser(t, "admin@test.com", models.RoleAdmin)

	item := map[string]interface{}{
		"name": "Es Teh", "description": "Sweet iced tea", "price": 8000, "category": "DRINK", "image": "/uploads/../../main.go",
	}
	w := env.do(http.MethodPost, "/api/menu", adminToken, item)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid image path", decodeBody(t, w)["message"])

	item["image"] = "/uploads/menu/teh.png"
	w = env.do(http.MethodPost, "/api/menu", adminToken, item)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPut, fmt.Sprintf("/api/menu/%v", dataObject(t, w)["id"]), adminToken, map[string]string{"image": "/uploads/menu/../../../go.mod"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

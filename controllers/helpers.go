package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/services"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

// respondServiceError maps service error kinds to status codes; anything unknown is a 500.
func respondServiceError(c *gin.Context, err error) {
	kind, ok := services.KindOf(err)
	if !ok {
		utils.RespondServerError(c, err)
		return
	}

	switch kind {
	case services.KindNotFound:
		utils.RespondError(c, http.StatusNotFound, err)
	case services.KindForbidden:
		utils.RespondError(c, http.StatusForbidden, err)
	default:
		utils.RespondError(c, http.StatusBadRequest, err)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid ID"))
		return 0, false
	}
	return uint(id), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate accepts ISO 8601 timestamps. Values without an offset are read as UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("Invalid date format")
}

// flexInt accepts a JSON number or a numeric string such as "4". Forms post numbers as strings.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if raw == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = flexInt(v)
	return nil
}

func (n *flexInt) intPtr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

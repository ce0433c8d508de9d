package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"jewelry_store/internal/middleware"
	"jewelry_store/internal/model"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func queryDay(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	day, err := utils.ParseDay(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &day, nil
}

// queryRange parses start_date and end_date, defaulting to the last 30 days
func queryRange(c *gin.Context, now time.Time) (time.Time, time.Time, error) {
	to := utils.Today(now)
	from := to.AddDate(0, 0, -30)
	start, err := queryDay(c, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := queryDay(c, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	return from, to, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &n, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &n, nil
}

func queryCurrency(c *gin.Context, name string) (*model.Currency, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	cur, err := model.ParseCurrency(v)
	if err != nil {
		return nil, err
	}
	return &cur, nil
}

func getAuthRole(c *gin.Context) (string, error) {
	roleVal, exists := c.Get(middleware.AuthRoleKey)
	if !exists {
		return "", errors.New("user role not found in context")
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", errors.New("invalid user role type in context")
	}
	return role, nil
}

func getAuthUser(c *gin.Context) (int, error) {
	userVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user id not found in context")
	}
	userID, ok := userVal.(int)
	if !ok {
		return 0, errors.New("invalid user id type in context")
	}
	return userID, nil
}

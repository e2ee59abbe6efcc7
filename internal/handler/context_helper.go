package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorbot-admin/internal/middleware"
	"github.com/noah-isme/tutorbot-admin/internal/service"
)

// pageRequest reads page and page_size. Values that are not integers are left at zero so the
// service applies its defaults.
func pageRequest(c *gin.Context) service.PageRequest {
	return service.PageRequest{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}

func responseMeta(c *gin.Context) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return meta
}

func currentUser(c *gin.Context) string {
	return c.GetString(gin.AuthUserKey)
}

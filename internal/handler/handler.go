// Package handler holds the pieces shared by the resource handlers: route
// parameter parsing and the invalid-request response shape.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses the numeric :id route parameter.
func ParamID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return id, true
}

// BindError answers a failed payload binding.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
}

// QueryInt64 parses an optional numeric query parameter, nil when absent.
func QueryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetro " + name + " inválido"})
		return nil, false
	}
	return &v, true
}

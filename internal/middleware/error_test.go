package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/regsaude/profissionais-api/pkg/errors"
)

func engineWith(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/t", func(c *gin.Context) {
		c.Error(err)
	})
	return r
}

func TestErrorHandlerMapeiaStatus(t *testing.T) {
	casos := []struct {
		err    error
		status int
		corpo  string
	}{
		{apperrors.NotFound("Cidade não encontrada", nil), http.StatusNotFound, `{"error":"Cidade não encontrada"}`},
		{apperrors.Forbidden(nil), http.StatusForbidden, `{"error":"Permissão negada"}`},
		{apperrors.Conflict("CPF já cadastrado", nil), http.StatusBadRequest, `{"error":"CPF já cadastrado"}`},
		// unclassified failures surface their raw message on 500
		{assert.AnError, http.StatusInternalServerError, `{"error":"assert.AnError general error for testing"}`},
		{apperrors.Internal(assert.AnError), http.StatusInternalServerError, `{"error":"assert.AnError general error for testing"}`},
	}

	for _, caso := range casos {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		engineWith(caso.err).ServeHTTP(w, req)

		assert.Equal(t, caso.status, w.Code)
		assert.JSONEq(t, caso.corpo, w.Body.String())
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	casos := []struct {
		err    *AppError
		status int
	}{
		{NotFound("Cidade não encontrada", nil), http.StatusNotFound},
		{Validation("Dados inválidos", nil), http.StatusBadRequest},
		{Unauthorized("Credenciais inválidas", nil), http.StatusUnauthorized},
		{Forbidden(nil), http.StatusForbidden},
		{Conflict("CPF já cadastrado", nil), http.StatusBadRequest},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, caso := range casos {
		assert.Equal(t, caso.status, caso.err.HTTPStatus(), caso.err.Message)
	}
}

func TestForbiddenMessage(t *testing.T) {
	assert.Equal(t, "Permissão negada", Forbidden(nil).Message)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(Conflict("RG já cadastrado", nil))
	assert.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)

	wrapped := fmt.Errorf("contexto: %w", NotFound("Usuário não encontrado", nil))
	appErr, ok = AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestUnwrap(t *testing.T) {
	causa := errors.New("sql: no rows")
	err := NotFound("Profissional não encontrado", causa)
	assert.ErrorIs(t, err, causa)
}

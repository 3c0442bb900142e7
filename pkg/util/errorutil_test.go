package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewConflict("Email a@b.com already exists", map[string]any{"email": "a@b.com"})

	domainErr := ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "a@b.com", domainErr.Details["email"])
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection refused")
	domainErr := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.ErrorIs(t, domainErr, cause)
}

func TestValidationErrorStatus(t *testing.T) {
	domainErr := ToDomainError(NewValidationError("invalid employee payload",
		map[string]any{"salary": "must be greater than 0"}))
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

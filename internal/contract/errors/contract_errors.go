package contracterrors

import (
	"net/http"

	"go-hrpos/internal/shared/apperror"
)

var (
	ErrTermsNotFound = apperror.New(
		apperror.CodeNotFound,
		"contract terms not found",
		http.StatusNotFound,
	)
	ErrEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"contract terms for this employee and effective date already exist",
		http.StatusConflict,
	)
	ErrInvalidPayType = apperror.New(
		apperror.CodeInvalidInput,
		"pay_type must be MONTHLY or HOURLY",
		http.StatusBadRequest,
	)
)

package scheduleerrors

import (
	"net/http"

	"go-hrpos/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid branch id",
		http.StatusBadRequest,
	)
	ErrInvalidShiftID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid shift id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidInterval = apperror.New(
		apperror.CodeInvalidInput,
		"shift start time must be before end time",
		http.StatusBadRequest,
	)
	ErrRegistrationNotFound = apperror.New(
		apperror.CodeNotFound,
		"shift registration not found",
		http.StatusNotFound,
	)
	ErrRegistrationNotPending = apperror.New(
		apperror.CodeInvalidState,
		"shift registration has already been decided",
		http.StatusBadRequest,
	)
	ErrDuplicateRegistration = apperror.New(
		apperror.CodeConflict,
		"employee already registered an overlapping shift for this date",
		http.StatusConflict,
	)
	ErrEmptyApprovalBatch = apperror.New(
		apperror.CodeInvalidInput,
		"no pending registrations for this branch and date",
		http.StatusBadRequest,
	)
)

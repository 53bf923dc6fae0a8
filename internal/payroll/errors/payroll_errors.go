package payrollerrors

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
	ErrInvalidBranchID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid branch id",
		http.StatusBadRequest,
	)
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrMissingContractTerms = apperror.New(
		apperror.CodeInvalidState,
		"employee has no usable contract terms for this period",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipFinalized = apperror.New(
		apperror.CodeLocked,
		"payslip is finalized and cannot be modified",
		http.StatusLocked,
	)
	ErrPayslipNotFinalized = apperror.New(
		apperror.CodeInvalidState,
		"payslip must be finalized first",
		http.StatusBadRequest,
	)
	ErrEmptyFinalizeBatch = apperror.New(
		apperror.CodeInvalidState,
		"no draft payslips to finalize for this month and branch",
		http.StatusBadRequest,
	)
	ErrEmptyUnfinalizeBatch = apperror.New(
		apperror.CodeInvalidState,
		"no finalized payslips to unlock for this month and branch",
		http.StatusBadRequest,
	)
	ErrFinalizeConflict = apperror.New(
		apperror.CodeConflict,
		"payslip batch changed while finalizing, retry",
		http.StatusConflict,
	)
	ErrFieldNotEditable = apperror.New(
		apperror.CodeInvalidInput,
		"field is not editable",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"money values cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidEditValue = apperror.New(
		apperror.CodeInvalidInput,
		"invalid value for edited field",
		http.StatusBadRequest,
	)
)

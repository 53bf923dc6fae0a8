package contract

import (
	"errors"
	"strings"

	contracterrors "go-hrpos/internal/contract/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_contract_terms_effective" {
			return contracterrors.ErrEffectiveDateAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_contract_terms_effective") {
		return contracterrors.ErrEffectiveDateAlreadyExists
	}

	return err
}

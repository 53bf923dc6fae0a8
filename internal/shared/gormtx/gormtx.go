// Package gormtx rebinds a gorm handle onto an open *sql.Tx so repository
// methods written against gorm can run inside a transaction the service
// layer controls.
package gormtx

import (
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Bind returns a gorm handle whose statements all execute on tx. Commit and
// rollback stay with the caller holding the *sql.Tx; SkipDefaultTransaction
// keeps gorm from trying to open a nested one.
func Bind(base *gorm.DB, tx *sql.Tx) *gorm.DB {
	bound, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 base.Config.Logger,
	})
	if err != nil {
		fallback := base.Session(&gorm.Session{NewDB: true})
		_ = fallback.AddError(err)
		return fallback
	}
	return bound
}

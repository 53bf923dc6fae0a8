package payconfig

import (
	"context"

	"go-hrpos/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payconfig_repo.go -destination=mock/payconfig_repo_mock.go -package=mock
type Repository interface {
	FindAllByCompany(ctx context.Context, companyID string) (map[string]string, error)
	Upsert(ctx context.Context, companyID, key, value string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) (map[string]string, error) {
	var rows []Setting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return values, nil
}

func (r *repository) Upsert(ctx context.Context, companyID, key, value string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&Setting{
			ID:        uuid.New(),
			CompanyID: companyUUID,
			Key:       key,
			Value:     value,
		}).Error
}

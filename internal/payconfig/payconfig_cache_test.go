package payconfig

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestService_Load_CacheHitSkipsRepo(t *testing.T) {
	companyID := uuid.NewString()
	cached := DefaultSnapshot()
	cached.StandardWorkDays = 24
	raw, err := json.Marshal(cached)
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKeyPrefix + companyID).SetVal(string(raw))

	repoCalls := 0
	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			repoCalls++
			return map[string]string{}, nil
		},
	}
	svc := NewService(repo, rdb)

	snap, err := svc.Load(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, 24, snap.StandardWorkDays)
	assert.Equal(t, 0, repoCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Load_CacheMissWritesBack(t *testing.T) {
	companyID := uuid.NewString()
	raw, err := json.Marshal(DefaultSnapshot())
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet(cacheKeyPrefix + companyID).RedisNil()
	mock.ExpectSet(cacheKeyPrefix+companyID, raw, 10*time.Minute).SetVal("OK")

	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			return map[string]string{}, nil
		},
	}
	svc := NewService(repo, rdb)

	snap, err := svc.Load(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, 26, snap.StandardWorkDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateSetting_InvalidatesCache(t *testing.T) {
	companyID := uuid.NewString()
	raw, err := json.Marshal(DefaultSnapshot())
	assert.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(cacheKeyPrefix + companyID).SetVal(1)
	mock.ExpectGet(cacheKeyPrefix + companyID).RedisNil()
	mock.ExpectSet(cacheKeyPrefix+companyID, raw, 10*time.Minute).SetVal("OK")

	repo := &fakeRepo{
		findAllByCompanyFn: func(ctx context.Context, companyID string) (map[string]string, error) {
			return map[string]string{}, nil
		},
		upsertFn: func(ctx context.Context, companyID, key, value string) error {
			return nil
		},
	}
	svc := NewService(repo, rdb)

	_, err = svc.UpdateSetting(context.Background(), companyID, KeyStandardWorkDays, "26")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

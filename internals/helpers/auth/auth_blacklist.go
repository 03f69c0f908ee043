package helper

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Revoker keeps the ids (jti) of tokens that were logged out before expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

/*
   =========================================================
   DB-backed blacklist
   =========================================================
*/

type TokenBlacklistModel struct {
	ID        uint      `gorm:"column:token_blacklist_id;primaryKey;autoIncrement"`
	JTI       string    `gorm:"column:token_blacklist_jti;type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"column:token_blacklist_expires_at;not null;index"`
	CreatedAt time.Time `gorm:"column:token_blacklist_created_at;autoCreateTime"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }

type DBRevoker struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDBRevoker(db *gorm.DB) *DBRevoker {
	return &DBRevoker{DB: db, Now: time.Now}
}

func (r *DBRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	row := TokenBlacklistModel{JTI: jti, ExpiresAt: until}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *DBRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&TokenBlacklistModel{}).
		Where("token_blacklist_jti = ? AND token_blacklist_expires_at > ?", jti, r.Now()).
		Count(&n).Error
	return n > 0, err
}

// Cleanup drops rows whose token would have expired anyway.
func (r *DBRevoker) Cleanup(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("token_blacklist_expires_at <= ?", r.Now()).
		Delete(&TokenBlacklistModel{})
	return res.RowsAffected, res.Error
}

/*
   =========================================================
   Redis-backed blacklist
   =========================================================
*/

type RedisRevoker struct {
	Client *redis.Client
	Prefix string
	Now    func() time.Time
}

func NewRedisRevoker(redisURL string) (*RedisRevoker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisRevoker{Client: redis.NewClient(opt), Prefix: "certihub:revoked:", Now: time.Now}, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ttl := until.Sub(r.Now())
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, r.Prefix+jti, "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	_, err := r.Client.Get(ctx, r.Prefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

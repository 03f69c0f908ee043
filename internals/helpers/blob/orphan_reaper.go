package blob

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrphanModel is a blob whose cleanup failed during an entity flow.
type OrphanModel struct {
	ID          uint           `gorm:"column:blob_orphan_id;primaryKey;autoIncrement" json:"id"`
	Key         string         `gorm:"column:blob_orphan_key;type:varchar(512);not null;index" json:"key"`
	Reason      string         `gorm:"column:blob_orphan_reason;type:varchar(64)" json:"reason"`
	Detail      datatypes.JSON `gorm:"column:blob_orphan_detail" json:"detail"`
	Attempts    int            `gorm:"column:blob_orphan_attempts;not null;default:0" json:"attempts"`
	ResolvedAt  *time.Time     `gorm:"column:blob_orphan_resolved_at;index" json:"resolved_at,omitempty"`
	CreatedAt   time.Time      `gorm:"column:blob_orphan_created_at;autoCreateTime" json:"created_at"`
	LastTriedAt *time.Time     `gorm:"column:blob_orphan_last_tried_at" json:"last_tried_at,omitempty"`
}

func (OrphanModel) TableName() string { return "blob_orphans" }

// OrphanRepository persists orphans; it satisfies OrphanRecorder.
type OrphanRepository struct {
	DB *gorm.DB
}

func NewOrphanRepository(db *gorm.DB) *OrphanRepository {
	return &OrphanRepository{DB: db}
}

func (r *OrphanRepository) Record(ctx context.Context, key, reason string, cause error) {
	detail := map[string]any{}
	if cause != nil {
		detail["error"] = cause.Error()
	}
	raw, _ := json.Marshal(detail)
	row := OrphanModel{Key: key, Reason: reason, Detail: datatypes.JSON(raw)}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Error().Err(err).Str("key", key).Msg("[ORPHAN] failed to record")
	}
}

func (r *OrphanRepository) Pending(ctx context.Context, maxAttempts, limit int) ([]OrphanModel, error) {
	out := make([]OrphanModel, 0)
	err := r.DB.WithContext(ctx).
		Where("blob_orphan_resolved_at IS NULL AND blob_orphan_attempts < ?", maxAttempts).
		Order("blob_orphan_id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

/* =======================================================================
   Reaper
======================================================================= */

type ReaperConfig struct {
	CronSchedule string
	MaxAttempts  int
	BatchSize    int
	DryRun       bool
}

type OrphanReaper struct {
	Store  Store
	Repo   *OrphanRepository
	Config ReaperConfig
	Now    func() time.Time
}

func NewOrphanReaper(store Store, repo *OrphanRepository, cfg ReaperConfig) *OrphanReaper {
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "@every 30m"
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	return &OrphanReaper{Store: store, Repo: repo, Config: cfg, Now: time.Now}
}

// RunOnce retries every pending orphan and returns how many were resolved.
func (r *OrphanReaper) RunOnce(ctx context.Context) (int, error) {
	rows, err := r.Repo.Pending(ctx, r.Config.MaxAttempts, r.Config.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if r.Config.DryRun {
		log.Info().Msgf("[ORPHAN-REAPER] DRY-RUN would retry %d orphans", len(rows))
		return 0, nil
	}

	resolved := 0
	for _, row := range rows {
		now := r.Now()
		err := r.Store.Delete(ctx, row.Key)
		updates := map[string]any{
			"blob_orphan_attempts":      gorm.Expr("blob_orphan_attempts + 1"),
			"blob_orphan_last_tried_at": now,
		}
		if err == nil || errors.Is(err, ErrObjectNotFound) {
			updates["blob_orphan_resolved_at"] = now
			resolved++
		} else {
			log.Warn().Err(err).Str("key", row.Key).Msg("[ORPHAN-REAPER] retry failed")
		}
		if uerr := r.Repo.DB.WithContext(ctx).
			Model(&OrphanModel{}).
			Where("blob_orphan_id = ?", row.ID).
			Updates(updates).Error; uerr != nil {
			log.Error().Err(uerr).Uint("id", row.ID).Msg("[ORPHAN-REAPER] update failed")
		}
	}
	log.Info().Msgf("[ORPHAN-REAPER] resolved %d/%d orphans", resolved, len(rows))
	return resolved, nil
}

// Schedule registers the reaper on c.
func (r *OrphanReaper) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc(r.Config.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		if _, err := r.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("[ORPHAN-REAPER] run failed")
		}
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("[ORPHAN-REAPER] scheduled %q maxAttempts=%d dryRun=%v",
		r.Config.CronSchedule, r.Config.MaxAttempts, r.Config.DryRun)
	return nil
}

package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// jobRow is the gorm model backing the sqlite Store implementation. The
// record itself travels as a JSON payload; status is broken out for
// guarded terminal updates.
type jobRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Status    string `gorm:"type:varchar(16);index;not null"`
	Payload   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (jobRow) TableName() string { return "verification_jobs" }

// Repo is a Store backed by gorm. Paired with an in-memory sqlite
// database it keeps state process-local while exercising a real
// transactional table, per the swappable-store design.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&jobRow{}); err != nil {
		return nil, fmt.Errorf("migrate verification_jobs: %w", err)
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Create(ctx context.Context, id string) error {
	rec := Record{
		Status:    StatusProcessing,
		Timestamp: time.Now().Unix(),
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	row := jobRow{ID: id, Status: string(StatusProcessing), Payload: string(payload)}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		var cnt int64
		if qerr := r.db.WithContext(ctx).Model(&jobRow{}).Where("id = ?", id).Count(&cnt).Error; qerr == nil && cnt > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Record, error) {
	var row jobRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (r *Repo) SetTerminal(ctx context.Context, id string, outcome Record) error {
	if outcome.Status != StatusCompleted && outcome.Status != StatusFailed {
		return fmt.Errorf("non-terminal outcome %q for job %s", outcome.Status, id)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row jobRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if row.Status != string(StatusProcessing) {
			return fmt.Errorf("job %s is already %s", id, row.Status)
		}

		var cur Record
		if err := json.Unmarshal([]byte(row.Payload), &cur); err != nil {
			return fmt.Errorf("decode record %s: %w", id, err)
		}
		outcome.Timestamp = cur.Timestamp

		payload, err := json.Marshal(outcome)
		if err != nil {
			return err
		}
		return tx.Model(&jobRow{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":  string(outcome.Status),
				"payload": string(payload),
			}).Error
	})
}

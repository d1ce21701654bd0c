// snapshot_service.go
//
// Portfolio content service with an embedded admin API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of visionfolio.
// visionfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// visionfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with visionfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/localnerve/visionfolio/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// ErrNoSnapshot is returned by Load when nothing has been saved for a locale
var ErrNoSnapshot = errors.New("no snapshot")

// SnapshotRepository keeps the latest content version per locale
type SnapshotRepository struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

// NewSnapshotRepository wraps db
func NewSnapshotRepository(db *gorm.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{DB: db, Log: log.With().Str("component", "snapshots").Logger()}
}

// Save writes content as the snapshot for locale unless a newer or equal
// version is already stored. Stale writes are skipped without error.
func (r *SnapshotRepository) Save(ctx context.Context, locale string, version uint64, content models.Content) error {
	payload, err := models.NewPayload(content)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.ContentDocument
		err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Clauses(hints.CommentBefore("select", "visionfolio:snapshot-save")).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("locale = ?", locale).
			First(&doc).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			doc = models.ContentDocument{
				Locale:          locale,
				DocumentVersion: version,
				Payload:         payload,
			}
			return tx.Create(&doc).Error
		}
		if err != nil {
			return err
		}

		if doc.DocumentVersion >= version {
			r.Log.Debug().
				Str("locale", locale).
				Uint64("stored", doc.DocumentVersion).
				Uint64("offered", version).
				Msg("skipping stale snapshot")
			return nil
		}

		return tx.Model(&doc).Updates(map[string]interface{}{
			"document_version": version,
			"payload":          payload,
		}).Error
	})
}

// Load returns the stored snapshot and its version for locale
func (r *SnapshotRepository) Load(ctx context.Context, locale string) (models.Content, uint64, error) {
	var doc models.ContentDocument
	err := r.DB.WithContext(ctx).
		Session(&gorm.Session{Logger: r.DB.Logger.LogMode(logger.Silent)}).
		Clauses(hints.CommentBefore("select", "visionfolio:snapshot-load")).
		Where("locale = ?", locale).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Content{}, 0, ErrNoSnapshot
		}
		return models.Content{}, 0, err
	}

	content, err := doc.Payload.Content()
	if err != nil {
		return models.Content{}, 0, fmt.Errorf("failed to decode snapshot for %q: %w", locale, err)
	}
	return content, doc.DocumentVersion, nil
}

// Delete removes the snapshot for locale. Missing rows are not an error.
func (r *SnapshotRepository) Delete(ctx context.Context, locale string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("locale = ?", locale).Delete(&models.ContentDocument{})
	return res.RowsAffected, res.Error
}

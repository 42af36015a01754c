package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hatemates/internal/db"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/matching"
	"hatemates/internal/utils/pagination"
)

// MatchRepository provides data access for MatchPair and SharedDislike rows.
// Every pair key it writes has already been canonicalized (user1_id <
// user2_id) by the caller through matching.NewPairKey.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// GetPairsForUser returns every persisted pair the user is part of,
// including retired ones.
func (r *MatchRepository) GetPairsForUser(ctx context.Context, userID uint64) ([]db.MatchPair, error) {
	var pairs []db.MatchPair
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&pairs).Error
	return pairs, err
}

// GetSelectionsForUser returns the shared-dislike rows of every pair the
// user is part of.
func (r *MatchRepository) GetSelectionsForUser(ctx context.Context, userID uint64) ([]db.SharedDislike, error) {
	var rows []db.SharedDislike
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("user1_id, user2_id, category_id").
		Find(&rows).Error
	return rows, err
}

// ApplyReconciliation writes one reconciliation pass as a single atomic unit:
//
//  1. Batch-upserts the pair write set keyed on (user1_id, user2_id). On
//     conflict only match_type, match_status and updated_at are overwritten;
//     both per-user statuses stay as stored, so a concurrent run for the
//     other user of a pair cannot clobber an acceptance.
//  2. Fully replaces the invoking user's shared-dislike rows (delete then
//     insert), keeping the tier consistent with its evidence.
//
// A failure anywhere rolls the whole batch back.
func (r *MatchRepository) ApplyReconciliation(ctx context.Context, userID uint64, pairs []db.MatchPair, selections []db.SharedDislike) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(pairs) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"match_type", "match_status", "updated_at"}),
			}).Create(&pairs).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user1_id = ? OR user2_id = ?", userID, userID).
			Delete(&db.SharedDislike{}).Error; err != nil {
			return err
		}
		if len(selections) > 0 {
			if err := tx.Create(&selections).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPair loads one pair by canonical key.
func (r *MatchRepository) GetPair(ctx context.Context, key matching.PairKey) (*db.MatchPair, error) {
	var pair db.MatchPair
	err := r.db.WithContext(ctx).
		First(&pair, "user1_id = ? AND user2_id = ?", key.User1ID, key.User2ID).Error
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// UpdatePairStatus applies one side's accept/decline and recomputes the
// aggregate status inside a transaction, returning the updated row.
func (r *MatchRepository) UpdatePairStatus(ctx context.Context, key matching.PairKey, side matching.Side, status matching.Status) (*db.MatchPair, error) {
	var pair db.MatchPair
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pair, "user1_id = ? AND user2_id = ?", key.User1ID, key.User2ID).Error; err != nil {
			return err
		}

		switch side {
		case matching.Side1:
			pair.User1Status = string(status)
		case matching.Side2:
			pair.User2Status = string(status)
		default:
			return svcErr.InvalidArgument("user is not part of this pair")
		}
		pair.MatchStatus = string(matching.AggregateStatus(
			matching.Status(pair.User1Status), matching.Status(pair.User2Status)))

		return tx.Model(&db.MatchPair{}).
			Where("user1_id = ? AND user2_id = ?", key.User1ID, key.User2ID).
			Updates(map[string]interface{}{
				"user1_status": pair.User1Status,
				"user2_status": pair.User2Status,
				"match_status": pair.MatchStatus,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// CountAccepted returns how many of the user's pairs are mutually accepted.
// Used in conjunction with the Redis counter cache (DB is the fallback).
func (r *MatchRepository) CountAccepted(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.MatchPair{}).
		Where("(user1_id = ? OR user2_id = ?) AND match_status = ?",
			userID, userID, string(matching.StatusAccepted)).
		Count(&count).Error
	return count, err
}

// ListAccepted returns the user's mutually accepted pairs, newest first,
// with cursor-based pagination.
func (r *MatchRepository) ListAccepted(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]db.MatchPair, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).Model(&db.MatchPair{}).
		Where("(user1_id = ? OR user2_id = ?) AND match_status = ?",
			userID, userID, string(matching.StatusAccepted)).
		Order("updated_at DESC, user1_id DESC, user2_id DESC").
		Limit(limit + 1)

	if cursor.User1ID > 0 && cursor.UpdatedUnix > 0 {
		ts := time.UnixMilli(cursor.UpdatedUnix)
		query = query.Where(
			`(updated_at < ? OR (updated_at = ? AND (user1_id < ? OR (user1_id = ? AND user2_id < ?))))`,
			ts, ts, cursor.User1ID, cursor.User1ID, cursor.User2ID,
		)
	}

	var pairs []db.MatchPair
	if err := query.Find(&pairs).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(pairs) > limit {
		last := pairs[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			User1ID:     last.User1ID,
			User2ID:     last.User2ID,
			UpdatedUnix: last.UpdatedAt.UnixMilli(),
		})
		nextToken = &token
		pairs = pairs[:limit]
	}

	return pairs, nextToken, nil
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

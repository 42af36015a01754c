package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hatemates/internal/db"
	"hatemates/internal/matching"
)

// SnapshotRepository assembles the read-only inputs of one matching run:
// users, profiles, preferences and dislikes, read as a consistent snapshot
// per invocation. It creates no state.
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new repository bound to the given DB connection.
func NewSnapshotRepository(database *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: database}
}

// CategoryCount returns the number of fixed dislike categories. The tier
// thresholds scale with this value.
func (r *SnapshotRepository) CategoryCount(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Category{}).Count(&count).Error
	return int(count), err
}

// LoadMember loads one user's full matching input. Returns (nil, nil) when
// the user exists but has no profile or preference on file yet: that is the
// "no info" condition, not an error.
func (r *SnapshotRepository) LoadMember(ctx context.Context, userID uint64) (*matching.Member, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var profile db.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var pref db.FriendPreference
	err = r.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	dislikes, err := r.loadDislikes(ctx, []uint64{userID})
	if err != nil {
		return nil, err
	}

	m := assembleMember(user, profile, pref, dislikes[userID])
	return &m, nil
}

// LoadPool loads every other user that has both a profile and a preference
// on file, i.e. the raw candidate pool before any eligibility filtering.
func (r *SnapshotRepository) LoadPool(ctx context.Context, excludeUserID uint64) ([]matching.Member, error) {
	var users []db.User
	if err := r.db.WithContext(ctx).Where("id <> ?", excludeUserID).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var profiles []db.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	profileByUser := make(map[uint64]db.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	var prefs []db.FriendPreference
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&prefs).Error; err != nil {
		return nil, err
	}
	prefByUser := make(map[uint64]db.FriendPreference, len(prefs))
	for _, p := range prefs {
		prefByUser[p.UserID] = p
	}

	dislikes, err := r.loadDislikes(ctx, ids)
	if err != nil {
		return nil, err
	}

	pool := make([]matching.Member, 0, len(users))
	for _, u := range users {
		profile, ok := profileByUser[u.ID]
		if !ok {
			continue
		}
		pref, ok := prefByUser[u.ID]
		if !ok {
			continue
		}
		pool = append(pool, assembleMember(u, profile, pref, dislikes[u.ID]))
	}
	return pool, nil
}

func (r *SnapshotRepository) loadDislikes(ctx context.Context, userIDs []uint64) (map[uint64][]matching.Selection, error) {
	var rows []db.DislikedSelection
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).
		Order("user_id, category_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64][]matching.Selection)
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], matching.Selection{
			CategoryID:  row.CategoryID,
			SelectionID: row.SelectionID,
		})
	}
	return out, nil
}

func assembleMember(u db.User, profile db.UserProfile, pref db.FriendPreference, dislikes []matching.Selection) matching.Member {
	return matching.Member{
		UserID:        u.ID,
		DemoGroupID:   u.DemoGroupID,
		Birthday:      profile.Birthday,
		Gender:        matching.NormalizeGender(profile.Gender),
		Lat:           pref.Lat,
		Lng:           pref.Lng,
		MileRadius:    pref.MileRadius,
		FriendGenders: pref.FriendGender.Set(),
		FriendAgeSpec: pref.FriendAge,
		Dislikes:      dislikes,
	}
}

package db

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"hatemates/internal/matching"
)

// User account row. DemoGroupID marks synthetic seed accounts; nil means a
// real user. Demo and real populations never cross-match.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	FirstName    string    `gorm:"size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	DemoGroupID  *int64    `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// UserProfile holds the demographic half of a user's matching input.
// Birthday is only ever used to derive age.
type UserProfile struct {
	UserID    uint64    `gorm:"primaryKey"`
	Birthday  time.Time `gorm:"not null"`
	Gender    string    `gorm:"size:16;not null"`
	Phone     string    `gorm:"size:32"`
	Contact   string    `gorm:"size:128"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// FriendPreference is a user's declared friend-matching preference: where
// they are, how far they'll go, and who they want to meet.
type FriendPreference struct {
	UserID       uint64    `gorm:"primaryKey"`
	City         string    `gorm:"size:64"`
	ZipCode      string    `gorm:"size:16"`
	Lat          float64   `gorm:"not null"`
	Lng          float64   `gorm:"not null"`
	MileRadius   float64   `gorm:"not null"`
	FriendGender GenderSet `gorm:"type:varchar(64);not null"`
	FriendAge    string    `gorm:"size:32;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Category is one of the fixed dislike categories (currently ten).
type Category struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

// DislikedSelection is a user's declared dislike within one category.
// Composite PK (user_id, category_id) bounds the per-user set at one
// selection per category.
type DislikedSelection struct {
	UserID      uint64    `gorm:"primaryKey"`
	CategoryID  uint64    `gorm:"primaryKey"`
	SelectionID uint64    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// MatchPair is one persisted relationship.
//
// Composite PK: (User1ID, User2ID) with User1ID < User2ID.
//   - The canonical ordering is enforced at every write site (via
//     matching.NewPairKey), so a relationship is exactly one row no matter
//     which user's reconciliation produced it.
//   - Concurrent reconciliations for the two users of the same pair resolve
//     through the OnConflict upsert on this key: the second writer's update
//     is idempotent with the first's insert.
//
// Fields:
//   - MatchType: the tier derived from shared-dislike overlap.
//   - User1Status/User2Status: per-user acceptance, owned by the lower/higher
//     id respectively. Left as stored on upsert conflict.
//   - MatchStatus: derived aggregate, overwritten together with MatchType.
type MatchPair struct {
	User1ID     uint64    `gorm:"primaryKey;index:idx_pair_user1_status,priority:1"`
	User2ID     uint64    `gorm:"primaryKey;index:idx_pair_user2_status,priority:1"`
	MatchType   string    `gorm:"size:32;not null"`
	User1Status string    `gorm:"size:16;not null;default:pending"`
	User2Status string    `gorm:"size:16;not null;default:pending"`
	MatchStatus string    `gorm:"size:16;not null;default:pending;index:idx_pair_user1_status,priority:2;index:idx_pair_user2_status,priority:2"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;index"`
}

// SharedDislike is one mutually-disliked item of a pair, the evidence behind
// the pair's tier. The set for a user's pairs is fully replaced on every
// reconciliation run, never partially patched.
type SharedDislike struct {
	User1ID     uint64    `gorm:"primaryKey"`
	User2ID     uint64    `gorm:"primaryKey"`
	CategoryID  uint64    `gorm:"primaryKey"`
	SelectionID uint64    `gorm:"primaryKey"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// GenderSet stores a friend-gender preference in the braced text form the
// original schema used ("{male,female}"). Parsing lives here, at the storage
// boundary; domain code only ever sees the normalized matching.GenderSet.
type GenderSet []string

// Value implements driver.Valuer.
func (s GenderSet) Value() (driver.Value, error) {
	return "{" + strings.Join(s, ",") + "}", nil
}

// Scan implements sql.Scanner.
func (s *GenderSet) Scan(v interface{}) error {
	var raw string
	switch x := v.(type) {
	case string:
		raw = x
	case []byte:
		raw = string(x)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into GenderSet", v)
	}
	raw = strings.Trim(strings.TrimSpace(raw), "{}")
	if raw == "" {
		*s = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(GenderSet, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	*s = out
	return nil
}

// Set converts to the domain representation, normalizing aliases.
func (s GenderSet) Set() matching.GenderSet {
	out := make(matching.GenderSet, 0, len(s))
	for _, g := range s {
		out = append(out, matching.NormalizeGender(g))
	}
	return out
}

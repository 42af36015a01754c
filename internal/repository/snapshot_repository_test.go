package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hatemates/internal/db"
	"hatemates/internal/repository"
)

func TestLoadMemberNoInfo(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSnapshotRepository(dbase)

	require.NoError(t, dbase.Create(&db.User{
		FirstName: "ada", Email: "ada@test.com", PasswordHash: "x",
	}).Error)

	// Account exists but never filled in profile or preferences.
	member, err := repo.LoadMember(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestLoadMemberAssembled(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSnapshotRepository(dbase)

	require.NoError(t, dbase.Create(&db.User{
		FirstName: "ada", Email: "ada@test.com", PasswordHash: "x",
	}).Error)
	require.NoError(t, dbase.Create(&db.UserProfile{
		UserID:   1,
		Birthday: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:   "F",
	}).Error)
	require.NoError(t, dbase.Create(&db.FriendPreference{
		UserID: 1, Lat: 51.5, Lng: -0.12, MileRadius: 15,
		FriendGender: db.GenderSet{"male", "female"},
		FriendAge:    "25-45",
	}).Error)
	require.NoError(t, dbase.Create(&db.DislikedSelection{
		UserID: 1, CategoryID: 2, SelectionID: 21,
	}).Error)

	member, err := repo.LoadMember(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "female", string(member.Gender))
	assert.Equal(t, "25-45", member.FriendAgeSpec)
	require.Len(t, member.Dislikes, 1)
	assert.Equal(t, uint64(21), member.Dislikes[0].SelectionID)
	assert.Nil(t, member.DemoGroupID)
}

func TestLoadPoolSkipsIncomplete(t *testing.T) {
	ctx := context.Background()
	dbase := setupTestDB(t)
	repo := repository.NewSnapshotRepository(dbase)

	// User 1 is the viewer, user 2 is complete, user 3 has no preference.
	for i := 1; i <= 3; i++ {
		require.NoError(t, dbase.Create(&db.User{
			FirstName: "u", Email: string(rune('a'+i)) + "@test.com", PasswordHash: "x",
		}).Error)
	}
	for _, id := range []uint64{2, 3} {
		require.NoError(t, dbase.Create(&db.UserProfile{
			UserID:   id,
			Birthday: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:   "male",
		}).Error)
	}
	require.NoError(t, dbase.Create(&db.FriendPreference{
		UserID: 2, Lat: 51.5, Lng: -0.12, MileRadius: 15,
		FriendGender: db.GenderSet{"female"}, FriendAge: "21-35",
	}).Error)

	pool, err := repo.LoadPool(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, uint64(2), pool[0].UserID)
}

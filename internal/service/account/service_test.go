package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hatemates/internal/app"
	"hatemates/internal/auth"
	"hatemates/internal/config"
	"hatemates/internal/db"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/service/account"
)

func setupService(t *testing.T) *account.Service {
	t.Helper()

	dbase, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	cfg := config.New()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(cfg, dbase, nil, logger, jwter)
	return account.NewService(appCtx)
}

func register(t *testing.T, svc *account.Service) *db.User {
	t.Helper()
	user, err := svc.Register(context.Background(), account.RegisterInput{
		FirstName: "Ada", Email: "Ada@Test.com", Password: "swordfish123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	user := register(t, svc)
	assert.Equal(t, "ada@test.com", user.Email) // stored lowercased
	assert.NotEqual(t, "swordfish123", user.PasswordHash)

	// duplicate email, regardless of case
	_, err := svc.Register(ctx, account.RegisterInput{
		FirstName: "Ada", Email: "ada@test.com", Password: "swordfish123",
	})
	var apiErr *svcErr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)

	token, signedIn, err := svc.SignIn(ctx, "ADA@test.com", "swordfish123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.NotEmpty(t, token)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)
	register(t, svc)

	var apiErr *svcErr.APIError

	_, _, err := svc.SignIn(ctx, "ada@test.com", "wrong-password")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	// unknown account gets the same message, no user enumeration
	_, _, err = svc.SignIn(ctx, "nobody@test.com", "swordfish123")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestSaveProfileInfo(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)
	user := register(t, svc)

	profile, err := svc.SaveProfileInfo(ctx, user.ID, account.ProfileInput{
		Birthday: "1994-06-15", Gender: "F", Contact: "ada@test.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "female", profile.Gender) // canonical form

	_, err = svc.SaveProfileInfo(ctx, user.ID, account.ProfileInput{
		Birthday: "15/06/1994", Gender: "female", Contact: "ada@test.com",
	})
	assert.Error(t, err)

	_, err = svc.SaveProfileInfo(ctx, user.ID, account.ProfileInput{
		Birthday: "1994-06-15", Gender: "martian", Contact: "ada@test.com",
	})
	assert.Error(t, err)
}

func TestSavePreferencesValidation(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)
	user := register(t, svc)

	valid := account.PreferenceInput{
		City: "London", ZipCode: "EC1A 1BB",
		Lat: 51.5074, Lng: -0.1278, MileRadius: 15,
		FriendGender: []string{"male", "female"}, FriendAge: "25-45",
	}

	pref, err := svc.SavePreferences(ctx, user.ID, valid)
	require.NoError(t, err)
	assert.Equal(t, db.GenderSet{"male", "female"}, pref.FriendGender)

	// open-ended age specs are accepted too
	open := valid
	open.FriendAge = "52+"
	_, err = svc.SavePreferences(ctx, user.ID, open)
	assert.NoError(t, err)

	bad := valid
	bad.MileRadius = 0
	_, err = svc.SavePreferences(ctx, user.ID, bad)
	assert.Error(t, err)

	bad = valid
	bad.FriendGender = nil
	_, err = svc.SavePreferences(ctx, user.ID, bad)
	assert.Error(t, err)

	bad = valid
	bad.FriendAge = "45-25"
	_, err = svc.SavePreferences(ctx, user.ID, bad)
	assert.Error(t, err)
}

func TestSaveDislikes(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)
	user := register(t, svc)

	err := svc.SaveDislikes(ctx, user.ID, []account.DislikeInput{
		{CategoryID: 1, SelectionID: 11},
		{CategoryID: 2, SelectionID: 21},
	})
	require.NoError(t, err)

	// re-submitting a category overwrites rather than duplicating
	err = svc.SaveDislikes(ctx, user.ID, []account.DislikeInput{
		{CategoryID: 1, SelectionID: 12},
	})
	require.NoError(t, err)

	err = svc.SaveDislikes(ctx, user.ID, []account.DislikeInput{
		{CategoryID: 1, SelectionID: 11},
		{CategoryID: 1, SelectionID: 12},
	})
	assert.Error(t, err)

	err = svc.SaveDislikes(ctx, user.ID, nil)
	assert.Error(t, err)
}

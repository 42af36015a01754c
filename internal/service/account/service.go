package account

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hatemates/internal/app"
	"hatemates/internal/db"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/matching"
	"hatemates/internal/repository"
)

// Service implements account sign-up/sign-in and the profile, preference and
// dislike writes the matching engine later reads as its snapshot.
type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

// NewService creates a new account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*db.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, svcErr.AlreadyExists("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.appCtx.Logger.Info("account registered", "user_id", user.ID)
	return user, nil
}

// SignIn verifies credentials and issues a bearer token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *db.User, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, svcErr.Unauthorized("invalid login")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, svcErr.Unauthorized("invalid login")
	}

	token, err := s.appCtx.JWT.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

type ProfileInput struct {
	Birthday string `json:"birthday" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
	Phone    string `json:"phone"`
	Contact  string `json:"contact" binding:"required"`
}

// SaveProfileInfo upserts the user's demographic profile. Gender is stored
// in canonical form.
func (s *Service) SaveProfileInfo(ctx context.Context, userID uint64, in ProfileInput) (*db.UserProfile, error) {
	birthday, err := time.Parse("2006-01-02", in.Birthday)
	if err != nil {
		return nil, svcErr.InvalidArgument("birthday must be in YYYY-MM-DD form")
	}
	gender := matching.NormalizeGender(in.Gender)
	switch gender {
	case matching.GenderMale, matching.GenderFemale, matching.GenderNonBinary:
	default:
		return nil, svcErr.InvalidArgument("unknown gender")
	}

	profile := &db.UserProfile{
		UserID:   userID,
		Birthday: birthday,
		Gender:   string(gender),
		Phone:    strings.TrimSpace(in.Phone),
		Contact:  strings.TrimSpace(in.Contact),
	}
	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

type PreferenceInput struct {
	City         string   `json:"city" binding:"required"`
	ZipCode      string   `json:"zipCode" binding:"required"`
	Lat          float64  `json:"lat" binding:"required"`
	Lng          float64  `json:"lng" binding:"required"`
	MileRadius   float64  `json:"mileRadius" binding:"required"`
	FriendGender []string `json:"friendGender" binding:"required"`
	FriendAge    string   `json:"friendAge" binding:"required"`
}

// SavePreferences upserts the user's friend preference.
func (s *Service) SavePreferences(ctx context.Context, userID uint64, in PreferenceInput) (*db.FriendPreference, error) {
	if in.MileRadius <= 0 {
		return nil, svcErr.InvalidArgument("mile radius must be positive")
	}
	if len(in.FriendGender) < 1 || len(in.FriendGender) > 3 {
		return nil, svcErr.InvalidArgument("friend gender preference must list 1-3 genders")
	}
	genders := make(db.GenderSet, 0, len(in.FriendGender))
	for _, g := range in.FriendGender {
		genders = append(genders, string(matching.NormalizeGender(g)))
	}
	if !matching.ValidAgeSpec(in.FriendAge) {
		return nil, svcErr.InvalidArgument("friend age range is malformed")
	}

	pref := &db.FriendPreference{
		UserID:       userID,
		City:         strings.TrimSpace(in.City),
		ZipCode:      strings.TrimSpace(in.ZipCode),
		Lat:          in.Lat,
		Lng:          in.Lng,
		MileRadius:   in.MileRadius,
		FriendGender: genders,
		FriendAge:    strings.TrimSpace(in.FriendAge),
	}
	if err := s.users.UpsertPreference(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

type DislikeInput struct {
	CategoryID  uint64 `json:"categoryId" binding:"required"`
	SelectionID uint64 `json:"selectionId" binding:"required"`
}

// SaveDislikes records the user's disliked selections, one per category.
func (s *Service) SaveDislikes(ctx context.Context, userID uint64, in []DislikeInput) error {
	if len(in) == 0 {
		return svcErr.InvalidArgument("at least one selection is required")
	}
	rows := make([]db.DislikedSelection, 0, len(in))
	seen := make(map[uint64]struct{}, len(in))
	for _, d := range in {
		if d.CategoryID == 0 || d.SelectionID == 0 {
			return svcErr.InvalidArgument("category and selection ids must be positive")
		}
		if _, dup := seen[d.CategoryID]; dup {
			return svcErr.InvalidArgument("at most one selection per category")
		}
		seen[d.CategoryID] = struct{}{}
		rows = append(rows, db.DislikedSelection{
			UserID:      userID,
			CategoryID:  d.CategoryID,
			SelectionID: d.SelectionID,
		})
	}
	return s.users.UpsertDislikes(ctx, rows)
}

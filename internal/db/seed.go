package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Fixed dislike categories. The overlap tiers scale off the category count,
// so seeding always creates all ten.
var CategoryNames = []string{
	"food", "music", "movies", "sports", "travel",
	"fashion", "technology", "pets", "weather", "small talk",
}

// SeedTestData resets the database and populates it with a mixed population
// of real and demo accounts, all with complete profiles, preferences and
// dislikes so that a reconciliation run immediately produces matches.
//
// Behavior:
//  1. Clears every table.
//  2. Inserts the ten dislike categories.
//  3. Creates 20 real users clustered around central London so radius
//     checks pass between neighbours, with mixed genders and ages.
//  4. Creates 12 demo users: groups 1..6 (auto-accepting under the default
//     threshold) and groups 101..106 (above it).
//  5. Gives every user one disliked selection per category, drawn from a
//     small selection pool so overlaps actually happen.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(42))

	// --- Fresh start ---
	for _, table := range []string{
		"shared_dislikes", "match_pairs", "disliked_selections",
		"friend_preferences", "user_profiles", "categories", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		db.Exec("ALTER TABLE users AUTO_INCREMENT = 1")
		db.Exec("ALTER TABLE categories AUTO_INCREMENT = 1")
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'users'")
		db.Exec("DELETE FROM sqlite_sequence WHERE name = 'categories'")
	}

	log.Println("Cleared existing data")

	// --- Categories ---
	for _, name := range CategoryNames {
		if err := db.Create(&Category{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	log.Printf("Seeded %d categories.", len(CategoryNames))

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	genders := []string{"male", "female", "non-binary"}
	ageSpecs := []string{"21-35", "25-45", "30-50", "52+"}

	seedOne := func(i int, demoGroup *int64) error {
		user := User{
			FirstName:    fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			DemoGroupID:  demoGroup,
		}
		if demoGroup != nil {
			user.FirstName = fmt.Sprintf("demo%d", i)
			user.Email = fmt.Sprintf("demo%d@example.com", i)
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		age := 22 + r.Intn(30)
		profile := UserProfile{
			UserID:   user.ID,
			Birthday: time.Now().AddDate(-age, 0, -r.Intn(300)),
			Gender:   genders[i%len(genders)],
			Phone:    fmt.Sprintf("+44 7700 900%03d", i),
			Contact:  user.Email,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}

		// Scatter within ~10 miles of central London.
		pref := FriendPreference{
			UserID:       user.ID,
			City:         "London",
			ZipCode:      fmt.Sprintf("EC1A %dBB", 1+i%9),
			Lat:          51.5074 + (r.Float64()-0.5)*0.2,
			Lng:          -0.1278 + (r.Float64()-0.5)*0.2,
			MileRadius:   float64(10 + r.Intn(20)),
			FriendGender: GenderSet{"male", "female", "non-binary"},
			FriendAge:    ageSpecs[i%len(ageSpecs)],
		}
		if err := db.Create(&pref).Error; err != nil {
			return fmt.Errorf("failed to seed preference: %w", err)
		}

		// One selection per category, from a pool of three per category so
		// any two users overlap on roughly a third of them.
		for c := 1; c <= len(CategoryNames); c++ {
			dislike := DislikedSelection{
				UserID:      user.ID,
				CategoryID:  uint64(c),
				SelectionID: uint64(c*10 + r.Intn(3) + 1),
			}
			if err := db.Create(&dislike).Error; err != nil {
				return fmt.Errorf("failed to seed dislike: %w", err)
			}
		}
		return nil
	}

	// --- Real users ---
	for i := 1; i <= 20; i++ {
		if err := seedOne(i, nil); err != nil {
			return err
		}
	}
	log.Println("Seeded 20 real users.")

	// --- Demo users: half inside the auto-accept group range, half above ---
	for i := 21; i <= 32; i++ {
		group := int64(i - 20)
		if i > 26 {
			group = int64(100 + i - 26)
		}
		if err := seedOne(i, &group); err != nil {
			return err
		}
	}
	log.Println("Seeded 12 demo users.")

	return nil
}

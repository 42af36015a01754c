package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeFromBirthday(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	// birthday already passed this year
	assert.Equal(t, 30, AgeFromBirthday(time.Date(1996, 3, 1, 0, 0, 0, 0, time.UTC), now))
	// birthday later this year -> not yet 30
	assert.Equal(t, 29, AgeFromBirthday(time.Date(1996, 9, 1, 0, 0, 0, 0, time.UTC), now))
	// birthday today counts
	assert.Equal(t, 30, AgeFromBirthday(time.Date(1996, 6, 15, 0, 0, 0, 0, time.UTC), now))
}

func TestAgeMatch_ClosedRange(t *testing.T) {
	assert.True(t, AgeMatch(30, "25-35"))
	assert.True(t, AgeMatch(25, "25-35"))
	assert.True(t, AgeMatch(35, "25-35"))
	assert.False(t, AgeMatch(40, "25-35"))
	assert.False(t, AgeMatch(24, "25-35"))
}

func TestAgeMatch_OpenRange(t *testing.T) {
	assert.True(t, AgeMatch(60, "52+"))
	assert.True(t, AgeMatch(52, "52+"))
	assert.False(t, AgeMatch(51, "52+"))

	// legacy token form
	assert.True(t, AgeMatch(60, "52 and above"))
	assert.False(t, AgeMatch(40, "52 and above"))
}

func TestAgeMatch_Malformed(t *testing.T) {
	assert.False(t, AgeMatch(30, ""))
	assert.False(t, AgeMatch(30, "abc"))
	assert.False(t, AgeMatch(30, "25-"))
}

func TestGenderMatch_NormalizesAliases(t *testing.T) {
	// compact alias without the hyphen must still match
	pref := GenderSet{"nonbinary", "female"}
	assert.True(t, GenderMatch(GenderNonBinary, pref))
	assert.True(t, GenderMatch(GenderFemale, pref))
	assert.False(t, GenderMatch(GenderMale, pref))
}

func TestGenderMatch_Membership(t *testing.T) {
	assert.True(t, GenderMatch(GenderMale, GenderSet{GenderMale}))
	assert.False(t, GenderMatch(GenderMale, GenderSet{GenderFemale, GenderNonBinary}))
}

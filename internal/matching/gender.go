package matching

import "strings"

// Gender is the canonical profile gender enumeration.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non-binary"
)

// NormalizeGender maps wire-format aliases onto the canonical enumeration.
// The non-binary member in particular is stored by some clients without the
// hyphen ("nonbinary"), so every comparison must go through here first.
func NormalizeGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "non-binary", "nonbinary", "non binary":
		return GenderNonBinary
	}
	return Gender(strings.ToLower(strings.TrimSpace(s)))
}

// GenderSet is a friend-gender preference: 1-3 members over the enumeration.
type GenderSet []Gender

// Normalize returns the set with every member in canonical form.
func (s GenderSet) Normalize() GenderSet {
	out := make(GenderSet, 0, len(s))
	for _, g := range s {
		out = append(out, NormalizeGender(string(g)))
	}
	return out
}

// Contains reports whether g (canonicalized) is a member of the set.
func (s GenderSet) Contains(g Gender) bool {
	want := NormalizeGender(string(g))
	for _, m := range s.Normalize() {
		if m == want {
			return true
		}
	}
	return false
}

// GenderMatch reports whether the candidate's gender is acceptable under the
// viewer's friend-gender preference.
func GenderMatch(candidate Gender, viewerPref GenderSet) bool {
	return viewerPref.Contains(candidate)
}

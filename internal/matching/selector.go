package matching

import "time"

// Selection is one declared dislike: a pick within a fixed category. A user
// holds at most one selection per category.
type Selection struct {
	CategoryID  uint64
	SelectionID uint64
}

// Member is the per-user snapshot the selector operates on: profile plus
// friend preference plus declared dislikes, read once per invocation.
type Member struct {
	UserID      uint64
	DemoGroupID *int64 // nil for real accounts

	Birthday time.Time
	Gender   Gender

	Lat           float64
	Lng           float64
	MileRadius    float64
	FriendGenders GenderSet
	FriendAgeSpec string

	Dislikes []Selection
}

// IsDemo reports whether the member is a synthetic seeded account.
func (m Member) IsDemo() bool { return m.DemoGroupID != nil }

// Candidate is a pool member that passed every eligibility check, annotated
// with the derived values the caller displays.
type Candidate struct {
	Member
	Age     int
	Mileage float64 // great-circle distance to the viewer, miles
}

// SelectCandidates filters the pool down to members that are mutually
// compatible with the viewer. A candidate is emitted only when all of the
// following hold:
//
//  1. Same population: demo viewers only see demo accounts, real viewers
//     only real accounts. Applied before any other check.
//  2. Mutual radius: the single great-circle distance is within both the
//     viewer's and the candidate's reach. Reach is the mile radius scaled by
//     KmPerMile, compared against the distance in miles: an N-mile radius
//     covers roughly 1.6N miles. Historical convention, relied upon by
//     stored preferences.
//  3. Mutual age compatibility, both directions.
//  4. Mutual gender compatibility, both directions.
//
// The viewer never appears in its own result. Failing candidates are dropped
// silently; an empty result is a valid outcome, not an error.
func SelectCandidates(viewer Member, pool []Member, now time.Time) []Candidate {
	viewerAge := AgeFromBirthday(viewer.Birthday, now)
	viewerReach := viewer.MileRadius * KmPerMile

	var out []Candidate
	for _, m := range pool {
		if m.UserID == viewer.UserID {
			continue
		}
		if m.IsDemo() != viewer.IsDemo() {
			continue
		}

		distMiles := DistanceMiles(viewer.Lat, viewer.Lng, m.Lat, m.Lng)
		if distMiles > viewerReach || distMiles > m.MileRadius*KmPerMile {
			continue
		}

		age := AgeFromBirthday(m.Birthday, now)
		if !AgeMatch(age, viewer.FriendAgeSpec) || !AgeMatch(viewerAge, m.FriendAgeSpec) {
			continue
		}
		if !GenderMatch(m.Gender, viewer.FriendGenders) || !GenderMatch(viewer.Gender, m.FriendGenders) {
			continue
		}

		out = append(out, Candidate{
			Member:  m,
			Age:     age,
			Mileage: distMiles,
		})
	}
	return out
}

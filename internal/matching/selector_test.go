package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func birthdayForAge(age int) time.Time {
	return time.Date(testNow.Year()-age, 1, 1, 0, 0, 0, 0, time.UTC)
}

// poolMember builds a member compatible with the default viewer unless
// overridden by the caller.
func poolMember(id uint64) Member {
	return Member{
		UserID:        id,
		Birthday:      birthdayForAge(30),
		Gender:        GenderFemale,
		Lat:           40.0,
		Lng:           -74.0,
		MileRadius:    10,
		FriendGenders: GenderSet{GenderMale, GenderFemale},
		FriendAgeSpec: "25-35",
	}
}

func testViewer() Member {
	v := poolMember(1)
	v.Gender = GenderMale
	return v
}

func TestSelectCandidates_MutualMatch(t *testing.T) {
	viewer := testViewer()
	cands := SelectCandidates(viewer, []Member{poolMember(2)}, testNow)

	require.Len(t, cands, 1)
	assert.Equal(t, uint64(2), cands[0].UserID)
	assert.Equal(t, 30, cands[0].Age)
	assert.Equal(t, 0.0, cands[0].Mileage)
}

func TestSelectCandidates_ExcludesSelf(t *testing.T) {
	viewer := testViewer()
	cands := SelectCandidates(viewer, []Member{viewer}, testNow)
	assert.Empty(t, cands)
}

func TestSelectCandidates_DemoPartition(t *testing.T) {
	demo := int64(3)
	viewer := testViewer()

	demoMember := poolMember(2)
	demoMember.DemoGroupID = &demo

	// real viewer never sees demo accounts
	assert.Empty(t, SelectCandidates(viewer, []Member{demoMember}, testNow))

	// demo viewer sees only demo accounts
	viewer.DemoGroupID = &demo
	cands := SelectCandidates(viewer, []Member{demoMember, poolMember(3)}, testNow)
	require.Len(t, cands, 1)
	assert.Equal(t, uint64(2), cands[0].UserID)
}

func TestSelectCandidates_MutualRadius(t *testing.T) {
	viewer := testViewer()

	// ~10km (6.2mi) away: 0.09 deg of latitude at a fixed longitude
	far := poolMember(2)
	far.Lat = 40.09

	// both radii cover the distance
	viewer.MileRadius, far.MileRadius = 10, 10
	assert.Len(t, SelectCandidates(viewer, []Member{far}, testNow), 1)

	// 5-mile radii reach ~8km, past the 10km gap under the scaled-reach
	// convention; a like-for-like mile or km comparison would exclude this
	// pair
	viewer.MileRadius, far.MileRadius = 5, 5
	assert.Len(t, SelectCandidates(viewer, []Member{far}, testNow), 1)

	// candidate's own radius too small: one-directional match is not enough
	far.MileRadius = 2
	assert.Empty(t, SelectCandidates(viewer, []Member{far}, testNow))

	// viewer's radius too small
	viewer.MileRadius, far.MileRadius = 2, 5
	assert.Empty(t, SelectCandidates(viewer, []Member{far}, testNow))
}

func TestSelectCandidates_MutualAge(t *testing.T) {
	viewer := testViewer()

	old := poolMember(2)
	old.Birthday = birthdayForAge(40) // outside viewer's 25-35
	assert.Empty(t, SelectCandidates(viewer, []Member{old}, testNow))

	picky := poolMember(3)
	picky.FriendAgeSpec = "52+" // viewer (30) outside candidate's range
	assert.Empty(t, SelectCandidates(viewer, []Member{picky}, testNow))
}

func TestSelectCandidates_MutualGender(t *testing.T) {
	viewer := testViewer() // male, wants male/female

	nb := poolMember(2)
	nb.Gender = GenderNonBinary // not in viewer's set
	assert.Empty(t, SelectCandidates(viewer, []Member{nb}, testNow))

	womenOnly := poolMember(3)
	womenOnly.FriendGenders = GenderSet{GenderFemale} // viewer not in candidate's set
	assert.Empty(t, SelectCandidates(viewer, []Member{womenOnly}, testNow))
}

func TestSelectCandidates_EmptyPool(t *testing.T) {
	assert.Empty(t, SelectCandidates(testViewer(), nil, testNow))
}

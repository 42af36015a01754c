package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, a, b uint64) PairKey {
	t.Helper()
	k, err := NewPairKey(a, b)
	require.NoError(t, err)
	return k
}

func TestReconcile_BucketsPartition(t *testing.T) {
	k12 := mustKey(t, 1, 2)
	k13 := mustKey(t, 1, 3)
	k14 := mustKey(t, 1, 4)

	fresh := []ScoredPair{
		{Key: k12, Tier: TierGood, OtherID: 2},  // also in old -> update
		{Key: k14, Tier: TierGreat, OtherID: 4}, // new -> upload
	}
	existing := []PairRecord{
		{Key: k12, Tier: TierGreat, User1Status: StatusAccepted, User2Status: StatusPending, MatchStatus: StatusPending},
		{Key: k13, Tier: TierGood, User1Status: StatusAccepted, User2Status: StatusAccepted, MatchStatus: StatusAccepted}, // gone -> retire
	}

	rec := Reconcile(1, nil, fresh, existing, 10)

	require.Len(t, rec.ToUpdate, 1)
	require.Len(t, rec.ToUpload, 1)
	require.Len(t, rec.ToRetire, 1)

	// every canonical key in exactly one bucket
	seen := map[PairKey]int{}
	for _, p := range rec.All() {
		seen[p.Key]++
	}
	assert.Equal(t, map[PairKey]int{k12: 1, k13: 1, k14: 1}, seen)
}

func TestReconcile_UpdateKeepsStatuses(t *testing.T) {
	k := mustKey(t, 1, 2)
	fresh := []ScoredPair{{Key: k, Tier: TierPerfect, OtherID: 2}}
	existing := []PairRecord{
		{Key: k, Tier: TierGood, User1Status: StatusAccepted, User2Status: StatusPending, MatchStatus: StatusPending},
	}

	rec := Reconcile(1, nil, fresh, existing, 10)
	require.Len(t, rec.ToUpdate, 1)

	got := rec.ToUpdate[0]
	assert.Equal(t, TierPerfect, got.Tier)
	assert.Equal(t, StatusAccepted, got.User1Status)
	assert.Equal(t, StatusPending, got.User2Status)
	assert.Equal(t, StatusPending, got.MatchStatus)
}

func TestReconcile_UploadUsesInitRule(t *testing.T) {
	k := mustKey(t, 1, 2)
	fresh := []ScoredPair{{Key: k, Tier: TierGood, OtherID: 2}}

	// real invoker: both pending
	rec := Reconcile(1, nil, fresh, nil, 10)
	require.Len(t, rec.ToUpload, 1)
	assert.Equal(t, StatusPending, rec.ToUpload[0].User1Status)
	assert.Equal(t, StatusPending, rec.ToUpload[0].User2Status)
	assert.Equal(t, StatusPending, rec.ToUpload[0].MatchStatus)

	// demo invoker in the auto-accept range: both accepted
	g := int64(4)
	rec = Reconcile(1, &g, fresh, nil, 10)
	require.Len(t, rec.ToUpload, 1)
	assert.Equal(t, StatusAccepted, rec.ToUpload[0].User1Status)
	assert.Equal(t, StatusAccepted, rec.ToUpload[0].User2Status)
	assert.Equal(t, StatusAccepted, rec.ToUpload[0].MatchStatus)
}

func TestReconcile_RetirePreservesAcceptance(t *testing.T) {
	k12 := mustKey(t, 1, 2)
	k13 := mustKey(t, 1, 3)
	k14 := mustKey(t, 1, 4)
	existing := []PairRecord{
		{Key: k12, Tier: TierGreat, User1Status: StatusAccepted, User2Status: StatusAccepted, MatchStatus: StatusAccepted},
		{Key: k13, Tier: TierGood, User1Status: StatusAccepted, User2Status: StatusPending, MatchStatus: StatusPending},
		{Key: k14, Tier: TierGood, User1Status: StatusRejected, User2Status: StatusAccepted, MatchStatus: StatusRejected},
	}

	rec := Reconcile(1, nil, nil, existing, 10)
	require.Len(t, rec.ToRetire, 3)

	byKey := map[PairKey]PairRecord{}
	for _, p := range rec.ToRetire {
		byKey[p.Key] = p
	}

	for _, p := range byKey {
		assert.Equal(t, TierNoLongerMatch, p.Tier)
	}
	assert.Equal(t, StatusAccepted, byKey[k12].MatchStatus)
	assert.Equal(t, StatusPending, byKey[k13].MatchStatus)
	assert.Equal(t, StatusRejected, byKey[k14].MatchStatus)
}

func TestReconcile_Idempotent(t *testing.T) {
	k := mustKey(t, 1, 2)
	fresh := []ScoredPair{{Key: k, Tier: TierGood, OtherID: 2}}

	first := Reconcile(1, nil, fresh, nil, 10)
	require.Len(t, first.ToUpload, 1)

	// run again with the upload persisted: statuses must not change
	second := Reconcile(1, nil, fresh, first.ToUpload, 10)
	assert.Empty(t, second.ToUpload)
	assert.Empty(t, second.ToRetire)
	require.Len(t, second.ToUpdate, 1)
	assert.Equal(t, first.ToUpload[0], second.ToUpdate[0])
}

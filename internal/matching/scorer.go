package matching

// DefaultCategoryCount is the number of fixed dislike categories the product
// currently ships with.
const DefaultCategoryCount = 10

// Tier is the discrete match strength derived from shared-dislike overlap.
// Never persisted on its own: it is a computed attribute of a pair.
type Tier string

const (
	TierNoLongerMatch Tier = "no longer a match"
	TierGood          Tier = "good match"
	TierGreat         Tier = "great match"
	TierPerfect       Tier = "perfect match"
)

// Rank orders tiers by strength, NoLongerMatch lowest.
func (t Tier) Rank() int {
	switch t {
	case TierGood:
		return 1
	case TierGreat:
		return 2
	case TierPerfect:
		return 3
	}
	return 0
}

// ValidTier reports whether t is a member of the tier enumeration.
func ValidTier(t Tier) bool {
	switch t {
	case TierNoLongerMatch, TierGood, TierGreat, TierPerfect:
		return true
	}
	return false
}

// TierForCount maps a shared-dislike count onto a tier. The thresholds scale
// with the category count rather than being fixed literals: a full sweep is
// perfect, at least half is great, at least one is good, and zero overlap
// means the pair no longer matches. With the current ten categories that is
// 10 / 5-9 / 1-4 / 0.
func TierForCount(shared, categoryCount int) Tier {
	switch {
	case categoryCount > 0 && shared >= categoryCount:
		return TierPerfect
	case categoryCount > 0 && shared >= categoryCount/2:
		return TierGreat
	case shared >= 1:
		return TierGood
	default:
		return TierNoLongerMatch
	}
}

// SharedSelections returns the intersection of two dislike sets by
// (categoryID, selectionID) equality. The result is in a's order.
func SharedSelections(a, b []Selection) []Selection {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	in := make(map[Selection]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}
	var out []Selection
	for _, s := range a {
		if _, ok := in[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ScoredPair is one candidate pairing with its tier and supporting evidence,
// keyed canonically so both sides of the relationship resolve to the same
// record.
type ScoredPair struct {
	Key              PairKey
	Tier             Tier
	Shared           []Selection
	OtherID          uint64
	OtherDemoGroupID *int64
}

// ScorePairs computes the shared-dislike overlap between the viewer and each
// candidate and attaches the resulting tier to the canonical pair key.
// Candidates that pair invalidly with the viewer (which the selector never
// emits) are skipped.
func ScorePairs(viewer Member, candidates []Candidate, categoryCount int) []ScoredPair {
	out := make([]ScoredPair, 0, len(candidates))
	for _, c := range candidates {
		key, err := NewPairKey(viewer.UserID, c.UserID)
		if err != nil {
			continue
		}
		shared := SharedSelections(viewer.Dislikes, c.Dislikes)
		out = append(out, ScoredPair{
			Key:              key,
			Tier:             TierForCount(len(shared), categoryCount),
			Shared:           shared,
			OtherID:          c.UserID,
			OtherDemoGroupID: c.DemoGroupID,
		})
	}
	return out
}

package matching

import "fmt"

// PairKey is the canonical identity of a relationship: the two user ids with
// the smaller one first. A pair is represented by exactly one key no matter
// which user triggered the computation, so every write site must build its
// key through NewPairKey.
type PairKey struct {
	User1ID uint64 // always the lower id
	User2ID uint64 // always the higher id
}

// NewPairKey canonicalizes (a, b) into a PairKey, reordering if needed.
// Zero ids and self-pairs are rejected.
func NewPairKey(a, b uint64) (PairKey, error) {
	if a == 0 || b == 0 {
		return PairKey{}, fmt.Errorf("pair ids must be positive, got (%d, %d)", a, b)
	}
	if a == b {
		return PairKey{}, fmt.Errorf("pair cannot contain the same user twice (%d)", a)
	}
	if a < b {
		return PairKey{User1ID: a, User2ID: b}, nil
	}
	return PairKey{User1ID: b, User2ID: a}, nil
}

// Side identifies which status slot of a pair a user owns.
type Side int

const (
	SideNone Side = iota
	Side1         // the lower-id user, owns user1Status
	Side2         // the higher-id user, owns user2Status
)

// SideOf returns which side of the pair userID sits on, or SideNone if the
// user is not part of the pair.
func (k PairKey) SideOf(userID uint64) Side {
	switch userID {
	case k.User1ID:
		return Side1
	case k.User2ID:
		return Side2
	}
	return SideNone
}

// Other returns the id of the user opposite userID in the pair.
func (k PairKey) Other(userID uint64) uint64 {
	if userID == k.User1ID {
		return k.User2ID
	}
	return k.User1ID
}

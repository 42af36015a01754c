package matching

// Status is a per-user acceptance status within a pair, and also the type of
// the derived per-pair aggregate.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// AggregateStatus derives the per-pair match status from the two per-user
// statuses: accepted only when both sides accepted, rejected as soon as
// either side rejected, pending otherwise.
func AggregateStatus(user1, user2 Status) Status {
	switch {
	case user1 == StatusRejected || user2 == StatusRejected:
		return StatusRejected
	case user1 == StatusAccepted && user2 == StatusAccepted:
		return StatusAccepted
	default:
		return StatusPending
	}
}

// InitialStatuses decides the per-user statuses for a brand-new pair.
//
// Real accounts always start out mutually pending. Demo accounts simulate
// pre-existing relationships: when the invoking user is a demo account and
// either party's demo group falls at or below autoAcceptMaxGroup, the pair
// starts mutually accepted (a seeded connection); otherwise the invoker's own
// side starts pending and the other party's side accepted, modeling a
// one-sided introduction. autoAcceptMaxGroup comes from configuration.
func InitialStatuses(key PairKey, invokerID uint64, invokerGroup, otherGroup *int64, autoAcceptMaxGroup int64) (user1, user2 Status) {
	if invokerGroup == nil {
		return StatusPending, StatusPending
	}
	if *invokerGroup <= autoAcceptMaxGroup || (otherGroup != nil && *otherGroup <= autoAcceptMaxGroup) {
		return StatusAccepted, StatusAccepted
	}
	if key.SideOf(invokerID) == Side1 {
		return StatusPending, StatusAccepted
	}
	return StatusAccepted, StatusPending
}

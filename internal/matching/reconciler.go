package matching

// PairRecord is the persisted state of one match pair, as the reconciler
// sees it: canonical key, tier, the two per-user statuses and the derived
// aggregate.
type PairRecord struct {
	Key         PairKey
	Tier        Tier
	User1Status Status
	User2Status Status
	MatchStatus Status
}

// Reconciliation is the three-way diff between a fresh candidate computation
// and the previously persisted pairs. The buckets are disjoint and together
// cover every canonical key present in either input.
type Reconciliation struct {
	// ToUpdate: present in both old and new. New tier, statuses untouched,
	// aggregate recomputed from the unchanged statuses.
	ToUpdate []PairRecord
	// ToUpload: present only in the new computation. Tier from the scorer,
	// statuses from the initialization rule.
	ToUpload []PairRecord
	// ToRetire: present only in the old records. Tier demoted to
	// NoLongerMatch; any acceptance already reached is preserved.
	ToRetire []PairRecord
}

// All returns the three buckets flattened, which is exactly the write set of
// one reconciliation pass.
func (r Reconciliation) All() []PairRecord {
	out := make([]PairRecord, 0, len(r.ToUpdate)+len(r.ToUpload)+len(r.ToRetire))
	out = append(out, r.ToUpdate...)
	out = append(out, r.ToUpload...)
	out = append(out, r.ToRetire...)
	return out
}

// Reconcile diffs fresh scored pairs for the invoking user against that
// user's existing pair records.
//
// Retirement demotes the tier but never deletes history: a pair that was
// mutually accepted stays accepted even once the candidate stops qualifying,
// and a rejection on either side keeps the aggregate rejected.
func Reconcile(invokerID uint64, invokerGroup *int64, fresh []ScoredPair, existing []PairRecord, autoAcceptMaxGroup int64) Reconciliation {
	old := make(map[PairKey]PairRecord, len(existing))
	for _, rec := range existing {
		old[rec.Key] = rec
	}

	var out Reconciliation
	seen := make(map[PairKey]struct{}, len(fresh))
	for _, sp := range fresh {
		seen[sp.Key] = struct{}{}
		if prev, ok := old[sp.Key]; ok {
			prev.Tier = sp.Tier
			prev.MatchStatus = AggregateStatus(prev.User1Status, prev.User2Status)
			out.ToUpdate = append(out.ToUpdate, prev)
			continue
		}
		u1, u2 := InitialStatuses(sp.Key, invokerID, invokerGroup, sp.OtherDemoGroupID, autoAcceptMaxGroup)
		out.ToUpload = append(out.ToUpload, PairRecord{
			Key:         sp.Key,
			Tier:        sp.Tier,
			User1Status: u1,
			User2Status: u2,
			MatchStatus: AggregateStatus(u1, u2),
		})
	}

	for _, rec := range existing {
		if _, ok := seen[rec.Key]; ok {
			continue
		}
		rec.Tier = TierNoLongerMatch
		rec.MatchStatus = AggregateStatus(rec.User1Status, rec.User2Status)
		out.ToRetire = append(out.ToRetire, rec)
	}
	return out
}

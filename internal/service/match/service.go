package match

import (
	"context"
	"sync"
	"time"

	"hatemates/internal/app"
	"hatemates/internal/db"
	svcErr "hatemates/internal/errors"
	"hatemates/internal/matching"
	"hatemates/internal/repository"
)

// Service implements the candidate matching and status-reconciliation
// engine on top of the repository and cache layers: one read phase over a
// user-pool snapshot, the pure matching computation, and one atomic
// reconciliation write.
// lockStripes bounds the reconciliation lock table; users sharing a stripe
// merely over-serialize.
const lockStripes = 64

type Service struct {
	appCtx    *app.AppContext
	snapshots *repository.SnapshotRepository
	matches   *repository.MatchRepository

	// Reconciliation is serialized per invoking user so two concurrent runs
	// cannot interleave upload decisions for the same canonical pair.
	locks [lockStripes]sync.Mutex
}

// NewService creates a new match service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		snapshots: repository.NewSnapshotRepository(appCtx.DB),
		matches:   repository.NewMatchRepository(appCtx.DB),
	}
}

// PairSelection is one shared dislike of a pair, as surfaced to callers.
type PairSelection struct {
	User1ID     uint64 `json:"user1Id"`
	User2ID     uint64 `json:"user2Id"`
	CategoryID  uint64 `json:"categoryId"`
	SelectionID uint64 `json:"selectionId"`
}

// Candidate is one eligible pool member with its derived display values.
type Candidate struct {
	UserID      uint64  `json:"userId"`
	Age         int     `json:"age"`
	Mileage     float64 `json:"mileage"`
	MatchType   string  `json:"matchType"`
	SharedCount int     `json:"sharedCount"`
}

// Computation is the result of one candidate run, carried between
// ComputeCandidates and Reconcile. A nil *Computation means the user has no
// profile or preference on file yet (the "no info" condition).
type Computation struct {
	Viewer     matching.Member
	Candidates []Candidate
	Scored     []matching.ScoredPair
}

// MatchResult is one persisted pair annotated with its shared-dislike
// evidence for display.
type MatchResult struct {
	User1ID         uint64          `json:"user1Id"`
	User2ID         uint64          `json:"user2Id"`
	MatchType       string          `json:"matchType"`
	User1Status     string          `json:"user1Status"`
	User2Status     string          `json:"user2Status"`
	MatchStatus     string          `json:"matchStatus"`
	MatchSelections []PairSelection `json:"matchSelections"`
}

// ComputeCandidates runs the read-only half of the engine: snapshot the
// invoking user and the pool, filter for mutual eligibility, and score each
// surviving pair by shared-dislike overlap.
//
// Returns (nil, nil) when the user has no profile/preference on file, and a
// non-nil Computation with empty slices when the pool simply yields no
// matches; neither is an error.
func (s *Service) ComputeCandidates(ctx context.Context, userID uint64) (*Computation, error) {
	if userID == 0 {
		return nil, svcErr.InvalidArgument("user id must be a positive integer")
	}

	viewer, err := s.snapshots.LoadMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		s.appCtx.Logger.Debug("compute skipped, no matching info on file", "user_id", userID)
		return nil, nil
	}

	pool, err := s.snapshots.LoadPool(ctx, userID)
	if err != nil {
		return nil, err
	}

	categoryCount, err := s.snapshots.CategoryCount(ctx)
	if err != nil {
		return nil, err
	}
	if categoryCount == 0 {
		categoryCount = matching.DefaultCategoryCount
	}

	candidates := matching.SelectCandidates(*viewer, pool, time.Now())
	scored := matching.ScorePairs(*viewer, candidates, categoryCount)

	comp := &Computation{Viewer: *viewer, Scored: scored}
	for i, c := range candidates {
		comp.Candidates = append(comp.Candidates, Candidate{
			UserID:      c.UserID,
			Age:         c.Age,
			Mileage:     c.Mileage,
			MatchType:   string(scored[i].Tier),
			SharedCount: len(scored[i].Shared),
		})
	}

	s.appCtx.Logger.Debug("computed candidates",
		"user_id", userID, "pool", len(pool), "eligible", len(candidates))
	return comp, nil
}

// Reconcile diffs the fresh computation against the user's persisted pairs
// and applies the update/upload/retire decisions as one atomic write,
// returning the user's full updated pair set (including retired pairs) with
// selections attached.
func (s *Service) Reconcile(ctx context.Context, userID uint64, comp *Computation) ([]MatchResult, error) {
	if userID == 0 {
		return nil, svcErr.InvalidArgument("user id must be a positive integer")
	}
	if comp == nil {
		return nil, nil
	}

	unlock := s.lockUser(userID)
	defer unlock()

	existing, err := s.matches.GetPairsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]matching.PairRecord, 0, len(existing))
	for _, p := range existing {
		key, kerr := matching.NewPairKey(p.User1ID, p.User2ID)
		if kerr != nil {
			return nil, kerr
		}
		records = append(records, matching.PairRecord{
			Key:         key,
			Tier:        matching.Tier(p.MatchType),
			User1Status: matching.Status(p.User1Status),
			User2Status: matching.Status(p.User2Status),
			MatchStatus: matching.Status(p.MatchStatus),
		})
	}

	rec := matching.Reconcile(userID, comp.Viewer.DemoGroupID, comp.Scored,
		records, s.appCtx.Cfg.Demo.AutoAcceptMaxGroup)

	writeSet := rec.All()
	pairs := make([]db.MatchPair, 0, len(writeSet))
	for _, p := range writeSet {
		pairs = append(pairs, db.MatchPair{
			User1ID:     p.Key.User1ID,
			User2ID:     p.Key.User2ID,
			MatchType:   string(p.Tier),
			User1Status: string(p.User1Status),
			User2Status: string(p.User2Status),
			MatchStatus: string(p.MatchStatus),
		})
	}

	var selections []db.SharedDislike
	for _, sp := range comp.Scored {
		for _, sel := range sp.Shared {
			selections = append(selections, db.SharedDislike{
				User1ID:     sp.Key.User1ID,
				User2ID:     sp.Key.User2ID,
				CategoryID:  sel.CategoryID,
				SelectionID: sel.SelectionID,
			})
		}
	}

	if err := s.matches.ApplyReconciliation(ctx, userID, pairs, selections); err != nil {
		return nil, err
	}

	// counts may have shifted for the invoker and for newly uploaded pairs
	s.appCtx.RedisCache.InvalidateMatchCount(ctx, userID)
	for _, p := range rec.ToUpload {
		s.appCtx.RedisCache.InvalidateMatchCount(ctx, p.Key.Other(userID))
	}

	s.appCtx.Logger.Info("reconciled matches", "user_id", userID,
		"updated", len(rec.ToUpdate), "uploaded", len(rec.ToUpload), "retired", len(rec.ToRetire))

	return s.listWithSelections(ctx, userID)
}

// RefreshMatches is the full engine pass exposed to the HTTP layer:
// compute candidates, then reconcile. A user without matching info gets an
// empty result.
func (s *Service) RefreshMatches(ctx context.Context, userID uint64) ([]MatchResult, error) {
	comp, err := s.ComputeCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, userID, comp)
}

// UpdatePairStatus applies one side's accept/decline action and recomputes
// the aggregate status. The side is derived from which member of the
// canonical pair the acting user is.
func (s *Service) UpdatePairStatus(ctx context.Context, userID, otherID uint64, status matching.Status) (*MatchResult, error) {
	if status != matching.StatusAccepted && status != matching.StatusRejected {
		return nil, svcErr.InvalidArgument("status must be accepted or rejected")
	}
	key, err := matching.NewPairKey(userID, otherID)
	if err != nil {
		return nil, svcErr.InvalidArgument(err.Error())
	}

	pair, err := s.matches.UpdatePairStatus(ctx, key, key.SideOf(userID), status)
	if err != nil {
		return nil, err
	}

	s.appCtx.RedisCache.InvalidateMatchCount(ctx, key.User1ID)
	s.appCtx.RedisCache.InvalidateMatchCount(ctx, key.User2ID)

	selections, err := s.matches.GetSelectionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toResult(*pair, selections)
	return &result, nil
}

// ListAcceptedMatches returns the user's mutually accepted pairs with
// cursor-based pagination.
func (s *Service) ListAcceptedMatches(ctx context.Context, userID uint64, paginationToken *string, limit int) ([]MatchResult, *string, error) {
	if userID == 0 {
		return nil, nil, svcErr.InvalidArgument("user id must be a positive integer")
	}
	pairs, nextToken, err := s.matches.ListAccepted(ctx, userID, paginationToken, limit)
	if err != nil {
		return nil, nil, err
	}
	selections, err := s.matches.GetSelectionsForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	results := make([]MatchResult, 0, len(pairs))
	for _, p := range pairs {
		results = append(results, toResult(p, selections))
	}
	return results, nextToken, nil
}

// CountAcceptedMatches returns the user's accepted-match count.
// Cache-first with a 1h TTL; concurrent misses collapse into one DB count.
func (s *Service) CountAcceptedMatches(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, svcErr.InvalidArgument("user id must be a positive integer")
	}
	key := s.appCtx.RedisCache.KeyForMatchCount(userID)
	return s.appCtx.RedisCache.GetOrLoadCount(ctx, key, time.Hour, func(ctx context.Context) (int64, error) {
		return s.matches.CountAccepted(ctx, userID)
	})
}

func (s *Service) listWithSelections(ctx context.Context, userID uint64) ([]MatchResult, error) {
	pairs, err := s.matches.GetPairsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	selections, err := s.matches.GetSelectionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	results := make([]MatchResult, 0, len(pairs))
	for _, p := range pairs {
		results = append(results, toResult(p, selections))
	}
	return results, nil
}

func toResult(pair db.MatchPair, selections []db.SharedDislike) MatchResult {
	out := MatchResult{
		User1ID:     pair.User1ID,
		User2ID:     pair.User2ID,
		MatchType:   pair.MatchType,
		User1Status: pair.User1Status,
		User2Status: pair.User2Status,
		MatchStatus: pair.MatchStatus,
	}
	for _, sel := range selections {
		if sel.User1ID == pair.User1ID && sel.User2ID == pair.User2ID {
			out.MatchSelections = append(out.MatchSelections, PairSelection{
				User1ID:     sel.User1ID,
				User2ID:     sel.User2ID,
				CategoryID:  sel.CategoryID,
				SelectionID: sel.SelectionID,
			})
		}
	}
	return out
}

// lockUser takes the user's reconciliation lock stripe and returns its
// unlock.
func (s *Service) lockUser(userID uint64) func() {
	mu := &s.locks[userID%lockStripes]
	mu.Lock()
	return mu.Unlock
}

package market

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"finlearn/internal/logger"
)

// Origin of a response served by the Service.
const (
	SourceRemote   = "remote"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// DefaultLeaderboardLimit is the board size requested when none is given.
const DefaultLeaderboardLimit = 20

// FundList is the fund catalog with its origin.
type FundList struct {
	Funds     []Fund    `json:"funds"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Player is the local player merged into leaderboards.
type Player struct {
	XP           int
	Level        int
	Achievements int
}

// Board is a ranked leaderboard with its origin.
type Board struct {
	Entries []LeaderboardEntry `json:"leaderboard"`
	Source  string             `json:"source"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCacheTTL sets how long fetched funds are served from memory.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// Service serves market data, preferring fresh remote data and degrading to
// the cache and then to static fallbacks.
type Service struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	funds     []Fund
	fetchedAt time.Time
}

// NewService creates a Service. A nil source serves fallbacks only.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source: source,
		ttl:    time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Funds returns the fund catalog. It never fails.
func (s *Service) Funds(ctx context.Context) FundList {
	s.mu.Lock()
	if s.funds != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		list := FundList{Funds: slices.Clone(s.funds), Source: SourceCache, FetchedAt: s.fetchedAt}
		s.mu.Unlock()
		return list
	}
	s.mu.Unlock()

	if err := s.Refresh(ctx); err == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return FundList{Funds: slices.Clone(s.funds), Source: SourceRemote, FetchedAt: s.fetchedAt}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.funds != nil {
		// Stale cache beats the static list.
		return FundList{Funds: slices.Clone(s.funds), Source: SourceCache, FetchedAt: s.fetchedAt}
	}
	return FundList{Funds: FallbackFunds(), Source: SourceFallback}
}

// Refresh fetches the fund catalog from the remote source into the cache.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}
	funds, err := s.source.Funds(ctx)
	if err != nil {
		logger.Get().Warnw("Market funds fetch failed", "error", err)
		return err
	}
	if len(funds) == 0 {
		logger.Get().Warnw("Market funds fetch returned no funds")
		return ErrEmpty
	}

	s.mu.Lock()
	s.funds = funds
	s.fetchedAt = s.now()
	s.mu.Unlock()

	logger.Get().Debugw("Market funds refreshed", "count", len(funds))
	return nil
}

// Leaderboard returns the top players with self merged in as "You".
func (s *Service) Leaderboard(ctx context.Context, limit int, self Player) Board {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	source := SourceFallback
	entries := FallbackLeaderboard()
	if s.source != nil {
		remote, err := s.source.Leaderboard(ctx, limit)
		if err != nil {
			logger.Get().Warnw("Leaderboard fetch failed, using demo board", "error", err)
		} else {
			source = SourceRemote
			entries = remote
		}
	}

	return Board{Entries: rank(entries, self, limit), Source: source}
}

// rank inserts the local player, orders by XP descending and numbers the
// entries from 1. The local player is always kept even past limit.
func rank(entries []LeaderboardEntry, self Player, limit int) []LeaderboardEntry {
	board := make([]LeaderboardEntry, 0, len(entries)+1)
	for i, e := range entries {
		if e.IsCurrentUser {
			continue
		}
		if e.Avatar == "" {
			e.Avatar = avatars[(i+1)%len(avatars)]
		}
		board = append(board, e)
	}
	board = append(board, LeaderboardEntry{
		Username:          "You",
		XP:                self.XP,
		Level:             self.Level,
		AchievementsCount: self.Achievements,
		Avatar:            avatars[0],
		IsCurrentUser:     true,
	})

	slices.SortStableFunc(board, func(a, b LeaderboardEntry) int {
		return cmp.Compare(b.XP, a.XP)
	})
	for i := range board {
		board[i].Rank = i + 1
	}

	if len(board) <= limit {
		return board
	}
	top := board[:limit]
	for _, e := range board[limit:] {
		if e.IsCurrentUser {
			return append(slices.Clone(top), e)
		}
	}
	return top
}

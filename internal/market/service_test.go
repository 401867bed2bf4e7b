package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakeSource struct {
	funds      []Fund
	board      []LeaderboardEntry
	err        error
	fundCalls  int
	boardLimit int
}

func (f *fakeSource) Funds(ctx context.Context) ([]Fund, error) {
	f.fundCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.funds, nil
}

func (f *fakeSource) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	f.boardLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.board, nil
}

func remoteFund() Fund {
	return Fund{Symbol: "X", Name: "Remote Fund", Return1Y: decimal.NewFromInt(9)}
}

func TestServiceFunds(t *testing.T) {
	ctx := context.Background()

	t.Run("no_source_uses_fallback", func(t *testing.T) {
		list := NewService(nil).Funds(ctx)
		if list.Source != SourceFallback || len(list.Funds) != 8 {
			t.Fatalf("expected 8 fallback funds, got %d from %s", len(list.Funds), list.Source)
		}
		for _, f := range list.Funds {
			if f.Return1Y.String() != "15.5" || f.Return3Y.String() != "18.2" || f.Return5Y.String() != "20.5" {
				t.Errorf("unexpected fallback returns for %s", f.Name)
			}
		}
	})

	t.Run("remote_then_cache_then_expiry", func(t *testing.T) {
		now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
		src := &fakeSource{funds: []Fund{remoteFund()}}
		svc := NewService(src, WithCacheTTL(time.Hour), WithClock(func() time.Time { return now }))

		if got := svc.Funds(ctx).Source; got != SourceRemote {
			t.Errorf("expected remote, got %s", got)
		}
		if got := svc.Funds(ctx).Source; got != SourceCache {
			t.Errorf("expected cache, got %s", got)
		}
		if src.fundCalls != 1 {
			t.Errorf("expected 1 remote call, got %d", src.fundCalls)
		}

		now = now.Add(2 * time.Hour)
		if got := svc.Funds(ctx).Source; got != SourceRemote {
			t.Errorf("expected remote after expiry, got %s", got)
		}
	})

	t.Run("stale_cache_on_failure", func(t *testing.T) {
		now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
		src := &fakeSource{funds: []Fund{remoteFund()}}
		svc := NewService(src, WithCacheTTL(time.Minute), WithClock(func() time.Time { return now }))
		svc.Funds(ctx)

		now = now.Add(time.Hour)
		src.err = errors.New("offline")
		list := svc.Funds(ctx)
		if list.Source != SourceCache || list.Funds[0].Name != "Remote Fund" {
			t.Errorf("expected stale remote data, got %+v", list)
		}
	})

	t.Run("remote_failure_uses_fallback", func(t *testing.T) {
		svc := NewService(&fakeSource{err: errors.New("offline")})
		if got := svc.Funds(ctx).Source; got != SourceFallback {
			t.Errorf("expected fallback, got %s", got)
		}
	})

	t.Run("empty_remote_uses_fallback", func(t *testing.T) {
		svc := NewService(&fakeSource{})
		if err := svc.Refresh(ctx); !errors.Is(err, ErrEmpty) {
			t.Errorf("expected ErrEmpty, got %v", err)
		}
		if got := svc.Funds(ctx).Source; got != SourceFallback {
			t.Errorf("expected fallback, got %s", got)
		}
	})
}

func TestServiceLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("fallback_board_with_player", func(t *testing.T) {
		board := NewService(nil).Leaderboard(ctx, 0, Player{XP: 5000, Level: 7, Achievements: 3})
		if board.Source != SourceFallback || len(board.Entries) != 10 {
			t.Fatalf("expected 10 fallback entries, got %d from %s", len(board.Entries), board.Source)
		}
		you := board.Entries[4]
		if !you.IsCurrentUser || you.Username != "You" || you.Rank != 5 {
			t.Errorf("expected You at rank 5, got %+v", you)
		}
		for i, e := range board.Entries {
			if e.Rank != i+1 {
				t.Errorf("entry %d has rank %d", i, e.Rank)
			}
			if i > 0 && board.Entries[i-1].XP < e.XP {
				t.Errorf("board not sorted at %d", i)
			}
		}
	})

	t.Run("remote_board", func(t *testing.T) {
		src := &fakeSource{board: []LeaderboardEntry{
			{Rank: 1, Username: "a", XP: 300, Level: 3},
			{Rank: 2, Username: "b", XP: 100, Level: 2},
		}}
		board := NewService(src).Leaderboard(ctx, 5, Player{XP: 200, Level: 2})
		if board.Source != SourceRemote || src.boardLimit != 5 {
			t.Fatalf("expected remote board requested with limit 5, got %s limit %d", board.Source, src.boardLimit)
		}
		names := []string{board.Entries[0].Username, board.Entries[1].Username, board.Entries[2].Username}
		if names[0] != "a" || names[1] != "You" || names[2] != "b" {
			t.Errorf("unexpected order %v", names)
		}
		if board.Entries[2].Avatar == "" {
			t.Error("expected avatar assigned to remote entry")
		}
	})

	t.Run("player_kept_past_limit", func(t *testing.T) {
		board := NewService(nil).Leaderboard(ctx, 3, Player{XP: 10})
		if len(board.Entries) != 4 {
			t.Fatalf("expected top 3 plus You, got %d", len(board.Entries))
		}
		last := board.Entries[3]
		if !last.IsCurrentUser || last.Rank != 10 {
			t.Errorf("expected You at rank 10, got %+v", last)
		}
	})

	t.Run("remote_failure_uses_demo_board", func(t *testing.T) {
		board := NewService(&fakeSource{err: errors.New("offline")}).Leaderboard(ctx, 20, Player{})
		if board.Source != SourceFallback || board.Entries[0].Username != "Alex Chen" {
			t.Errorf("unexpected board: %+v", board)
		}
	})
}

func TestRefresher(t *testing.T) {
	src := &fakeSource{funds: []Fund{remoteFund()}}
	svc := NewService(src)
	r := NewRefresher(svc, time.Second)

	if err := r.Register("not a schedule"); err == nil {
		t.Error("expected invalid schedule to fail")
	}
	if err := r.Register("@every 30m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.RunNow()
	if src.fundCalls != 1 {
		t.Errorf("expected one refresh, got %d", src.fundCalls)
	}
	if got := svc.Funds(context.Background()).Source; got != SourceCache {
		t.Errorf("expected cache after refresh, got %s", got)
	}

	r.Start()
	r.Stop()
}

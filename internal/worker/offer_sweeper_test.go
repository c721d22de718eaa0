package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	testhelpers "github.com/Aviraj0403/restro-back/internal/test"
)

func TestNewOfferSweeperDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewOfferSweeper(&testhelpers.SweeperFacadeStub{}, time.Second, 0, 0, logger)
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
	if sweeper.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", sweeper.workers)
	}
}

func TestOfferSweeperDeactivatesExpiredOffers(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.SweeperFacadeStub{
		Batches: [][]model.Offer{{{ID: 1, Name: "stale"}, {ID: 2, Name: "older"}}},
	}
	sweeper := NewOfferSweeper(facade, 10*time.Millisecond, 2, 2, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		done := len(facade.Deactivated) >= 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
	facade.Lock()
	defer facade.Unlock()
	seen := map[int64]bool{}
	for _, call := range facade.Deactivated {
		seen[call.OfferID] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("expected both offers deactivated, got %+v", facade.Deactivated)
	}
}

func TestOfferSweeperContinuesAfterErrors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	attempts := int32(0)
	facade := &testhelpers.SweeperFacadeStub{
		Batches: [][]model.Offer{{{ID: 1}}, {{ID: 2}}},
		DeactivateFn: func(ctx context.Context, offerID int64) error {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return errors.New("transient")
			}
			return nil
		},
	}

	sweeper := NewOfferSweeper(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&attempts) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for second sweep attempt")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sweeper.Stop()
}

func TestOfferSweeperFetchErrorDoesNotStop(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	calls := int32(0)
	facade := &testhelpers.SweeperFacadeStub{
		ExpiredFn: func(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
			atomic.AddInt32(&calls, 1)
			return nil, errors.New("db down")
		},
	}

	sweeper := NewOfferSweeper(facade, 5*time.Millisecond, 1, 1, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for repeated polls")
		case <-time.After(10 * time.Millisecond):
		}
	}
	sweeper.Stop()
}

func TestOfferSweeperStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	sweeper := NewOfferSweeper(&testhelpers.SweeperFacadeStub{}, time.Hour, 1, 1, logger)
	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}

package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
)

// OrderingFacade exposes the subset of application functionality required by the sweeper.
type OrderingFacade interface {
	ExpiredOffers(ctx context.Context, now time.Time, limit int) ([]model.Offer, error)
	DeactivateOffer(ctx context.Context, offerID int64) error
}

// OfferSweeper periodically deactivates offers whose end date has passed,
// so expired promotions stop matching redemption lookups.
type OfferSweeper struct {
	facade       OrderingFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Offer
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOfferSweeper constructs the sweeper worker pool.
func NewOfferSweeper(facade OrderingFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OfferSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OfferSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Offer, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *OfferSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *OfferSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *OfferSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *OfferSweeper) fetchAndDispatch(ctx context.Context) {
	offers, err := s.facade.ExpiredOffers(ctx, time.Now(), s.batchSize)
	if err != nil {
		s.logger.Error("fetch expired offers failed", slog.String("error", err.Error()))
		return
	}
	for _, offer := range offers {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- offer:
		}
	}
}

func (s *OfferSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case offer, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleOffer(ctx, offer)
		}
	}
}

func (s *OfferSweeper) handleOffer(ctx context.Context, offer model.Offer) {
	if err := s.facade.DeactivateOffer(ctx, offer.ID); err != nil {
		s.logger.Error("deactivate expired offer failed",
			slog.Int64("offer_id", offer.ID),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("expired offer deactivated",
		slog.Int64("offer_id", offer.ID),
		slog.String("name", offer.Name))
}

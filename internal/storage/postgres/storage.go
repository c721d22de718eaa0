package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/domain/repository"
)

const uniqueViolationCode = "23505"

// Pool abstracts pgxpool operations used by the storage layer.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type offerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

// newPgxPool is an indirection point so tests can substitute a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Offers() repository.OfferRepository {
	return &offerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS offers (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            code TEXT,
            discount_percentage DOUBLE PRECISION NOT NULL,
            max_discount_amount DOUBLE PRECISION,
            start_date TIMESTAMPTZ NOT NULL,
            end_date TIMESTAMPTZ NOT NULL,
            status TEXT NOT NULL DEFAULT 'Active',
            auto_apply BOOLEAN NOT NULL DEFAULT FALSE,
            usage_count BIGINT NOT NULL DEFAULT 0,
            max_usage_count BIGINT NOT NULL DEFAULT 40,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS offer_redemptions (
            offer_id BIGINT NOT NULL REFERENCES offers(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            redeemed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (offer_id, user_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            items JSONB NOT NULL,
            shipping_address JSONB NOT NULL,
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            status TEXT NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            discount_code TEXT,
            offer_id BIGINT REFERENCES offers(id),
            placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            items JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_offers_code ON offers(code) WHERE code IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_offers_status_end ON offers(status, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, placed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, placed_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, name, email, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- OfferRepository implementation ---

const offerColumns = `id, name, code, discount_percentage, max_discount_amount, start_date, end_date,
                      status, auto_apply, usage_count, max_usage_count, created_at, updated_at`

func scanOffer(row pgx.Row) (*model.Offer, error) {
	var o model.Offer
	err := row.Scan(&o.ID, &o.Name, &o.Code, &o.DiscountPercentage, &o.MaxDiscountAmount,
		&o.StartDate, &o.EndDate, &o.Status, &o.AutoApply, &o.UsageCount, &o.MaxUsageCount,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOffers(rows pgx.Rows) ([]model.Offer, error) {
	defer rows.Close()
	var result []model.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	const query = `INSERT INTO offers (name, code, discount_percentage, max_discount_amount, start_date, end_date,
                                       status, auto_apply, usage_count, max_usage_count)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   RETURNING id, created_at, updated_at`
	created := *offer
	err := r.storage.pool.QueryRow(ctx, query,
		offer.Name, offer.Code, offer.DiscountPercentage, offer.MaxDiscountAmount,
		offer.StartDate, offer.EndDate, offer.Status, offer.AutoApply,
		offer.UsageCount, offer.MaxUsageCount,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

// Update applies offer changes. The cap guard runs inside the statement so a
// concurrent redemption cannot slip the usage count past a shrinking cap.
func (r *offerRepository) Update(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	const query = `UPDATE offers SET name=$1, code=$2, discount_percentage=$3, max_discount_amount=$4,
                       start_date=$5, end_date=$6, status=$7, auto_apply=$8, max_usage_count=$9, updated_at=NOW()
                   WHERE id=$10 AND usage_count <= $9
                   RETURNING ` + offerColumns
	updated, err := scanOffer(r.storage.pool.QueryRow(ctx, query,
		offer.Name, offer.Code, offer.DiscountPercentage, offer.MaxDiscountAmount,
		offer.StartDate, offer.EndDate, offer.Status, offer.AutoApply, offer.MaxUsageCount,
		offer.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.updateFailure(ctx, offer.ID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

// updateFailure tells a vanished offer apart from a cap below the recorded
// usage count.
func (r *offerRepository) updateFailure(ctx context.Context, id int64) error {
	const query = `SELECT usage_count FROM offers WHERE id=$1`
	var usage int
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&usage)
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrOfferNotFound
	}
	if err != nil {
		return err
	}
	return domainErrors.ErrInvalidOffer
}

func (r *offerRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE offers SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, model.OfferStatusInactive, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOfferNotFound
	}
	return nil
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers WHERE id=$1`
	offer, err := scanOffer(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) List(ctx context.Context) ([]model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

func (r *offerRepository) ListActive(ctx context.Context, now time.Time) ([]model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers
                   WHERE status='Active' AND start_date <= $1 AND end_date >= $1
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

func (r *offerRepository) ListActivePromoCodes(ctx context.Context, now time.Time) ([]model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers
                   WHERE status='Active' AND code IS NOT NULL AND start_date <= $1 AND end_date >= $1
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

func (r *offerRepository) FindRedeemable(ctx context.Context, code string, now time.Time) (*model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers
                   WHERE code=$1 AND status='Active' AND start_date <= $2 AND end_date >= $2`
	offer, err := scanOffer(r.storage.pool.QueryRow(ctx, query, code, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) HasRedeemed(ctx context.Context, offerID, userID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM offer_redemptions WHERE offer_id=$1 AND user_id=$2)`
	var redeemed bool
	if err := r.storage.pool.QueryRow(ctx, query, offerID, userID).Scan(&redeemed); err != nil {
		return false, err
	}
	return redeemed, nil
}

func (r *offerRepository) Redeem(ctx context.Context, offerID, userID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return r.storage.redeemTx(ctx, tx, offerID, userID)
	})
}

func (r *offerRepository) SelectExpired(ctx context.Context, now time.Time, limit int) ([]model.Offer, error) {
	const query = `SELECT ` + offerColumns + ` FROM offers
                   WHERE status='Active' AND end_date < $1
                   ORDER BY end_date
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	return collectOffers(rows)
}

// redeemTx records a per-user redemption and bumps the usage counter within
// the caller's transaction. The composite primary key rejects repeat use by
// the same user, the conditional update enforces the global cap.
func (s *Storage) redeemTx(ctx context.Context, tx pgx.Tx, offerID, userID int64) error {
	const insertRedemption = `INSERT INTO offer_redemptions (offer_id, user_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, insertRedemption, offerID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domainErrors.ErrOfferAlreadyRedeemed
		}
		return err
	}

	const bumpUsage = `UPDATE offers SET usage_count = usage_count + 1, updated_at=NOW()
                       WHERE id=$1 AND usage_count < max_usage_count`
	tag, err := tx.Exec(ctx, bumpUsage, offerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOfferExhausted
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, items, shipping_address, payment_method, payment_status, status,
                      total_amount, discount_amount, discount_code, offer_id, placed_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		items    []byte
		shipping []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &items, &shipping, &o.PaymentMethod, &o.PaymentStatus,
		&o.Status, &o.TotalAmount, &o.DiscountAmount, &o.DiscountCode, &o.OfferID,
		&o.PlacedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal(shipping, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()
	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateSettled persists the order and its offer redemption inside one
// transaction, so a cap or per-user conflict rolls the whole order back.
func (r *orderRepository) CreateSettled(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	shipping, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}

	created := *order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if order.OfferID != nil {
			if err := r.storage.redeemTx(ctx, tx, *order.OfferID, order.UserID); err != nil {
				return err
			}
		}

		const insertOrder = `INSERT INTO orders (user_id, items, shipping_address, payment_method, payment_status,
                                                 status, total_amount, discount_amount, discount_code, offer_id)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING id, placed_at, updated_at`
		return tx.QueryRow(ctx, insertOrder,
			order.UserID, items, shipping, order.PaymentMethod, order.PaymentStatus,
			order.Status, order.TotalAmount, order.DiscountAmount, order.DiscountCode, order.OfferID,
		).Scan(&created.ID, &created.PlacedAt, &created.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY placed_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	offset := (filter.Page - 1) * filter.Limit

	var (
		orders []model.Order
		total  int64
		err    error
	)
	if filter.Status != nil {
		const query = `SELECT ` + orderColumns + ` FROM orders WHERE status=$1
                       ORDER BY placed_at DESC LIMIT $2 OFFSET $3`
		rows, qerr := r.storage.pool.Query(ctx, query, *filter.Status, filter.Limit, offset)
		if qerr != nil {
			return nil, 0, qerr
		}
		if orders, err = collectOrders(rows); err != nil {
			return nil, 0, err
		}
		err = r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status=$1`, *filter.Status).Scan(&total)
	} else {
		const query = `SELECT ` + orderColumns + ` FROM orders
                       ORDER BY placed_at DESC LIMIT $1 OFFSET $2`
		rows, qerr := r.storage.pool.Query(ctx, query, filter.Limit, offset)
		if qerr != nil {
			return nil, 0, qerr
		}
		if orders, err = collectOrders(rows); err != nil {
			return nil, 0, err
		}
		err = r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, lockQuery, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if !model.CanTransition(order.Status, status) {
			return domainErrors.ErrInvalidStatusTransition
		}

		const updateQuery = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
		if err := tx.QueryRow(ctx, updateQuery, status, orderID).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) Cancel(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	var cancelled *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, lockQuery, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if order.UserID != userID {
			return domainErrors.ErrForbidden
		}
		if !order.Cancellable() {
			return domainErrors.ErrInvalidStatusTransition
		}

		const updateQuery = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
		if err := tx.QueryRow(ctx, updateQuery, model.OrderStatusCancelled, orderID).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.Status = model.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *orderRepository) Stats(ctx context.Context, since *time.Time) (*model.OrderStats, error) {
	var stats model.OrderStats
	var err error
	if since != nil {
		const query = `SELECT COUNT(*), COALESCE(SUM(total_amount - discount_amount), 0)
                       FROM orders WHERE status <> 'Cancelled' AND placed_at >= $1`
		err = r.storage.pool.QueryRow(ctx, query, *since).Scan(&stats.Count, &stats.TotalRevenue)
	} else {
		const query = `SELECT COUNT(*), COALESCE(SUM(total_amount - discount_amount), 0)
                       FROM orders WHERE status <> 'Cancelled'`
		err = r.storage.pool.QueryRow(ctx, query).Scan(&stats.Count, &stats.TotalRevenue)
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	const query = `SELECT user_id, items, updated_at FROM carts WHERE user_id=$1`
	var (
		cart  model.Cart
		items []byte
	)
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&cart.UserID, &items, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &cart.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return &cart, nil
}

func (r *cartRepository) Put(ctx context.Context, userID int64, items []model.CartItem) (*model.Cart, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart items: %w", err)
	}

	const query = `INSERT INTO carts (user_id, items, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
                   RETURNING updated_at`
	cart := model.Cart{UserID: userID, Items: items}
	if err := r.storage.pool.QueryRow(ctx, query, userID, encoded).Scan(&cart.UpdatedAt); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM carts WHERE user_id=$1`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

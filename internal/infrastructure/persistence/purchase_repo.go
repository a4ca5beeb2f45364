package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/xid"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/errcodes"
)

type PurchaseRepository struct {
	db *sqlx.DB
}

func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create records one issued purchase action. The id and timestamp are
// assigned here if the caller left them empty.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = xid.New().String()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO purchases (
				id, created_at, connected_realm_id, auction_id, item_id, pet_id,
				commodity, amount, unit_price, total_price, item_link
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		_, err := tx.ExecContext(ctx, query,
			purchase.ID,
			purchase.CreatedAt,
			purchase.ConnectedRealmID,
			purchase.AuctionID,
			purchase.ItemID,
			purchase.PetID,
			purchase.Commodity,
			purchase.Amount,
			purchase.UnitPrice,
			purchase.TotalPrice,
			purchase.ItemLink,
		)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert purchase")
		}

		return nil
	})
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `
		SELECT id, created_at, connected_realm_id, auction_id, item_id, pet_id,
		       commodity, amount, unit_price, total_price, item_link
		FROM purchases
		WHERE id = $1`

	var schema purchaseSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "purchase not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get purchase")
	}

	return schema.toDomain(), nil
}

// ListRecent returns the newest ledger entries first.
func (r *PurchaseRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, created_at, connected_realm_id, auction_id, item_id, pet_id,
		       commodity, amount, unit_price, total_price, item_link
		FROM purchases
		ORDER BY created_at DESC
		LIMIT $1`

	var schemas []purchaseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list purchases")
	}

	purchases := make([]*entity.Purchase, 0, len(schemas))
	for i := range schemas {
		purchases = append(purchases, schemas[i].toDomain())
	}

	return purchases, nil
}

// ListByRealm returns the realm's ledger entries, newest first.
func (r *PurchaseRepository) ListByRealm(ctx context.Context, connectedRealmID int64, limit int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, created_at, connected_realm_id, auction_id, item_id, pet_id,
		       commodity, amount, unit_price, total_price, item_link
		FROM purchases
		WHERE connected_realm_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var schemas []purchaseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, connectedRealmID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list purchases")
	}

	purchases := make([]*entity.Purchase, 0, len(schemas))
	for i := range schemas {
		purchases = append(purchases, schemas[i].toDomain())
	}

	return purchases, nil
}

// TotalSpent sums the realm's ledger for budget accounting.
func (r *PurchaseRepository) TotalSpent(ctx context.Context, connectedRealmID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(total_price), 0)
		FROM purchases
		WHERE connected_realm_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, query, connectedRealmID); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to sum purchases")
	}

	return total, nil
}

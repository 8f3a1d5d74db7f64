package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mercado/internal/domain"
	"mercado/internal/domain/entity"
	"mercado/pkg/errcodes"
	"mercado/pkg/lox"
)

// SaleRepository is the durable store for sale records. Every operation acts
// on single records; the database guarantees their atomicity, which is all
// the ledger relies on.
type SaleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (
			sale_uid, item_uid, quantity, price, seller,
			seller_external_id, from_timestamp, to_timestamp
		) VALUES (
			:sale_uid, :item_uid, :quantity, :price, :seller,
			:seller_external_id, :from_timestamp, :to_timestamp
		)`

	if _, err := r.db.NamedExecContext(ctx, query, fromSale(sale)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert sale")
	}

	return nil
}

// GetBySaleUID returns nil on a miss: an absent sale is an empty result, not
// an error.
func (r *SaleRepository) GetBySaleUID(ctx context.Context, saleUID string) (*entity.Sale, error) {
	query := `
		SELECT sale_uid, item_uid, quantity, price, seller,
		       seller_external_id, from_timestamp, to_timestamp
		FROM sales
		WHERE sale_uid = $1`

	var schema saleSchema
	if err := r.db.GetContext(ctx, &schema, query, saleUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get sale")
	}

	sale := schema.toDomain()

	return &sale, nil
}

func (r *SaleRepository) GetAll(ctx context.Context) ([]entity.Sale, error) {
	query := `
		SELECT sale_uid, item_uid, quantity, price, seller,
		       seller_external_id, from_timestamp, to_timestamp
		FROM sales`

	var schemas []saleSchema
	if err := r.db.SelectContext(ctx, &schemas, query); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list sales")
	}

	return lox.Map(schemas, saleSchema.toDomain), nil
}

func (r *SaleRepository) GetByItemUIDs(ctx context.Context, itemUIDs []string) ([]entity.Sale, error) {
	if len(itemUIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT sale_uid, item_uid, quantity, price, seller,
		       seller_external_id, from_timestamp, to_timestamp
		FROM sales
		WHERE item_uid IN (?)`, itemUIDs)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var schemas []saleSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get sales by item uids")
	}

	return lox.Map(schemas, saleSchema.toDomain), nil
}

// RemoveBySaleUID deletes the matching sale and reports how many records went
// away. A miss is 0, never an error.
func (r *SaleRepository) RemoveBySaleUID(ctx context.Context, saleUID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE sale_uid = $1`, saleUID)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to remove sale")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return removed, nil
}

// RemoveStale deletes every sale whose offer window ended before the given
// epoch-seconds instant and returns the removed count.
func (r *SaleRepository) RemoveStale(ctx context.Context, before int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE to_timestamp < $1`, before)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to remove stale sales")
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	return removed, nil
}

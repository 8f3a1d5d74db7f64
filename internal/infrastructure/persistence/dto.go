package persistence

import "mercado/internal/domain/entity"

// saleSchema maps a row of the sales table. Column names are the wire
// contract of the sale record: timestamps are epoch seconds, no implicit
// schema migration.
type saleSchema struct {
	SaleUID          string `db:"sale_uid"`
	ItemUID          string `db:"item_uid"`
	Quantity         int64  `db:"quantity"`
	Price            int64  `db:"price"`
	Seller           string `db:"seller"`
	SellerExternalID int64  `db:"seller_external_id"`
	FromTimestamp    int64  `db:"from_timestamp"`
	ToTimestamp      int64  `db:"to_timestamp"`
}

func fromSale(sale *entity.Sale) saleSchema {
	return saleSchema{
		SaleUID:          sale.SaleUID,
		ItemUID:          sale.ItemUID,
		Quantity:         sale.Quantity,
		Price:            sale.Price,
		Seller:           sale.Seller,
		SellerExternalID: sale.SellerExternalID,
		FromTimestamp:    sale.FromTimestamp,
		ToTimestamp:      sale.ToTimestamp,
	}
}

func (s saleSchema) toDomain() entity.Sale {
	return entity.Sale{
		SaleUID:          s.SaleUID,
		ItemUID:          s.ItemUID,
		Quantity:         s.Quantity,
		Price:            s.Price,
		Seller:           s.Seller,
		SellerExternalID: s.SellerExternalID,
		FromTimestamp:    s.FromTimestamp,
		ToTimestamp:      s.ToTimestamp,
	}
}

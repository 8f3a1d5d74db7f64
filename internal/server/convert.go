package server

import (
	"mercado/internal/domain/entity"
	"mercado/internal/domain/service/market"
	"mercado/pkg/lox"
	"mercado/pkg/rest"
)

func newRESTItem(item entity.Item) rest.Item {
	return rest.Item{
		UID:       item.UID,
		Name:      item.Name,
		BasePrice: item.BasePrice,
	}
}

func newRESTItemList(items ...entity.Item) rest.ItemList {
	return rest.ItemList{
		Items: lox.Map(items, newRESTItem),
	}
}

func newRESTSale(listing market.Listing) rest.Sale {
	return rest.Sale{
		SaleUID:       listing.Sale.SaleUID,
		ItemUID:       listing.Sale.ItemUID,
		ItemName:      listing.Item.Name,
		Quantity:      listing.Sale.Quantity,
		Price:         listing.Sale.Price,
		Seller:        listing.Sale.Seller,
		FromTimestamp: listing.Sale.FromTimestamp,
		ToTimestamp:   listing.Sale.ToTimestamp,
	}
}

func newRESTSaleList(listings []market.Listing) rest.SaleList {
	return rest.SaleList{
		Sales: lox.Map(listings, newRESTSale),
	}
}

package domain

import "github.com/shopspring/decimal"

// ProductType classifies a product record.
type ProductType string

const (
	ProductGoods   ProductType = "GOODS"
	ProductService ProductType = "service"
	ProductCombo   ProductType = "combo"
)

// Product is master data referenced by invoice lines; maintained externally.
type Product struct {
	ProductID   string          `json:"productID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Sales       bool            `json:"sales"`
	Purchase    bool            `json:"purchase"`
	ProductType ProductType     `json:"productType"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

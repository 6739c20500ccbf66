package domain

// Product is a catalog entry owned by a store. QuantityAvailable is the only
// field this backend mutates in place; it only ever decreases when an order
// commits and must never go below zero.
type Product struct {
	ID                int64
	StoreID           int64
	Name              string
	Price             float64
	QuantityAvailable int
	ImageURL          string
	IsActive          bool
}

// Store is an independent seller's catalog. Read-only during checkout; the
// delivery columns are the per-method price/ETA the pricer snapshots from.
type Store struct {
	ID              int64
	OwnerUserID     string
	Name            string
	StandardPrice   float64
	StandardEtaDays int
	ExpressPrice    float64
	ExpressEtaDays  int
}

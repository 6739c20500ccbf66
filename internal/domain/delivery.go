package domain

type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
)

// Valid reports whether the method is one of the two supported values.
func (m DeliveryMethod) Valid() bool {
	return m == DeliveryStandard || m == DeliveryExpress
}

// DeliveryQuote is a store's delivery price/ETA for one method, resolved at
// checkout time and copied onto the seller order.
type DeliveryQuote struct {
	Method  DeliveryMethod
	Price   float64
	EtaDays int
}

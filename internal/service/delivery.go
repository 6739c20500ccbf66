package service

import (
	"fmt"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
)

// ResolveDelivery snapshots a store's delivery price and ETA for the selected
// method. The snapshot is what gets written onto the seller order, so a later
// change to the store's rates never alters a committed order.
func ResolveDelivery(store domain.Store, method domain.DeliveryMethod) (domain.DeliveryQuote, error) {
	switch method {
	case domain.DeliveryStandard:
		return domain.DeliveryQuote{
			Method:  method,
			Price:   store.StandardPrice,
			EtaDays: store.StandardEtaDays,
		}, nil
	case domain.DeliveryExpress:
		return domain.DeliveryQuote{
			Method:  method,
			Price:   store.ExpressPrice,
			EtaDays: store.ExpressEtaDays,
		}, nil
	default:
		return domain.DeliveryQuote{}, fmt.Errorf("%w: %q for store %d", ErrInvalidDeliveryMethod, method, store.ID)
	}
}

package ports

import "context"

// PaymentGateway wraps the external payment processor. CreateIntent registers
// a pending charge of amountCents minor units and returns the opaque client
// secret the frontend completes the charge with. No store is touched.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}

package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart rejects checkout when the session has nothing carted.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrMissingDeliveryAddress rejects checkout until the user fills in
	// a delivery address on their profile.
	ErrMissingDeliveryAddress = errors.New("checkout: delivery address missing")

	// ErrMissingPaymentInfo rejects confirmation without a card number.
	ErrMissingPaymentInfo = errors.New("checkout: payment info missing")

	// ErrNotFound covers orders that do not exist or belong to another
	// user; the two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("checkout: order not found")

	// ErrInFlight rejects a confirmation while another one for the same
	// session is still running.
	ErrInFlight = errors.New("checkout: confirmation already in progress")
)

// PersistenceError wraps a storage failure during order creation. The cart
// is left intact so the user can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("checkout: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

package checkout

import (
	"errors"
	"sync"

	"github.com/AntonZhuravskiy/web-larek/internal/cart"
)

var (
	// ErrIncompleteOrder means at least one form group is not valid at
	// build time.
	ErrIncompleteOrder = errors.New("order form is incomplete")
	// ErrEmptyCart means there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty, nothing to order")
)

// OrderPayload is the final structure sent to the order sink, combining the
// checkout fields with the cart contents captured at submission time.
type OrderPayload struct {
	Payment PaymentMethod `json:"payment"`
	Address string        `json:"address"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Items   []string      `json:"items"`
	Total   float64       `json:"total"`
}

// Session owns the two-step checkout form state: the delivery group
// (payment method + address) and the contacts group (email + phone).
// Validation re-runs synchronously on every field edit so aggregate
// validity always tracks the latest input.
type Session struct {
	mu        sync.RWMutex
	payment   PaymentMethod
	address   string
	email     string
	phone     string
	observers []func(FormErrors)
}

func NewSession() *Session {
	return &Session{}
}

// SetPayment stores the payment method and re-validates the delivery group.
func (s *Session) SetPayment(m PaymentMethod) {
	s.mu.Lock()
	s.payment = m
	s.notifyLocked()
}

// SetAddress stores the raw address and re-validates the delivery group.
func (s *Session) SetAddress(raw string) {
	s.mu.Lock()
	s.address = raw
	s.notifyLocked()
}

// SetEmail stores the raw email and re-validates the contacts group.
func (s *Session) SetEmail(raw string) {
	s.mu.Lock()
	s.email = raw
	s.notifyLocked()
}

// SetPhone stores the raw phone and re-validates the contacts group.
func (s *Session) SetPhone(raw string) {
	s.mu.Lock()
	s.phone = raw
	s.notifyLocked()
}

// ValidateDelivery checks the payment method and address. Untouched fields
// count as invalid with the same message as cleared ones.
func (s *Session) ValidateDelivery() GroupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deliveryLocked()
}

// ValidateContacts checks the email and phone.
func (s *Session) ValidateContacts() GroupResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contactsLocked()
}

func (s *Session) deliveryLocked() GroupResult {
	errs := FormErrors{}
	if msg := validatePayment(s.payment); msg != "" {
		errs[FieldPayment] = msg
	}
	if msg := validateAddress(s.address); msg != "" {
		errs[FieldAddress] = msg
	}
	return GroupResult{Valid: len(errs) == 0, Errors: errs}
}

func (s *Session) contactsLocked() GroupResult {
	errs := FormErrors{}
	if msg := validateEmail(s.email); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := validatePhone(s.phone); msg != "" {
		errs[FieldPhone] = msg
	}
	return GroupResult{Valid: len(errs) == 0, Errors: errs}
}

// Errors returns the current error messages across both groups.
func (s *Session) Errors() FormErrors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorsLocked()
}

func (s *Session) errorsLocked() FormErrors {
	errs := FormErrors{}
	for f, msg := range s.deliveryLocked().Errors {
		errs[f] = msg
	}
	for f, msg := range s.contactsLocked().Errors {
		errs[f] = msg
	}
	return errs
}

// BuildOrder assembles the final payload from the form fields and the given
// cart snapshot. Both groups are re-validated at this moment regardless of
// which step the UI is displaying, since the delivery fields may have gone
// stale while the contacts step was on screen.
func (s *Session) BuildOrder(snap cart.Snapshot) (OrderPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.deliveryLocked().Valid || !s.contactsLocked().Valid {
		return OrderPayload{}, ErrIncompleteOrder
	}
	if snap.Count == 0 {
		return OrderPayload{}, ErrEmptyCart
	}

	return OrderPayload{
		Payment: s.payment,
		Address: s.address,
		Email:   s.email,
		Phone:   s.phone,
		Items:   snap.ProductIDs(),
		Total:   snap.Total,
	}, nil
}

// Reset clears all field values back to the untouched state for both
// groups.
func (s *Session) Reset() {
	s.mu.Lock()
	s.payment = ""
	s.address = ""
	s.email = ""
	s.phone = ""
	s.notifyLocked()
}

// OnChange registers a callback fired with the current field errors after
// every edit.
func (s *Session) OnChange(fn func(FormErrors)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// notifyLocked collects errors under the held lock, releases it, then fires
// the observers. Callers must hold s.mu.
func (s *Session) notifyLocked() {
	errs := s.errorsLocked()
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(errs)
	}
}

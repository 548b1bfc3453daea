package checkout

// PaymentMethod is the delivery-step payment selector.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

// ParsePaymentMethod maps a raw token onto a known method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentOnline:
		return PaymentOnline, true
	case PaymentCash:
		return PaymentCash, true
	}
	return "", false
}

// Field identifies one checkout form field.
type Field string

const (
	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// FormErrors carries the current per-field error messages. A missing key
// means the field is valid; values are display-ready strings, never Go
// errors.
type FormErrors map[Field]string

// GroupResult is the aggregate validity of one form group.
type GroupResult struct {
	Valid  bool       `json:"valid"`
	Errors FormErrors `json:"errors"`
}

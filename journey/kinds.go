package journey

// Kind selects which step catalog and which branch rules apply to a session.
// It is fixed at session start; switching kinds means resetting the session.
type Kind string

const (
	KindCustomerOnline  Kind = "customer_online"
	KindCustomerOffline Kind = "customer_offline"
	KindStorekeeper     Kind = "storekeeper"
	KindMessenger       Kind = "messenger"
)

// ParseKind maps a wire string to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCustomerOnline, KindCustomerOffline, KindStorekeeper, KindMessenger:
		return Kind(s), true
	}
	return "", false
}

// PurchaseType is the purchase-channel choice made at the inventory step.
type PurchaseType string

const (
	PurchaseNone    PurchaseType = ""
	PurchaseOnline  PurchaseType = "online"
	PurchaseOffline PurchaseType = "offline"
)

// PaymentMethod is the sub-selection on the payment step. Picking a method
// does not advance the journey by itself.
type PaymentMethod string

const (
	PaymentNone   PaymentMethod = ""
	PaymentUPI    PaymentMethod = "upi"
	PaymentCredit PaymentMethod = "credit"
	PaymentDebit  PaymentMethod = "debit"
	PaymentCOD    PaymentMethod = "cod"
)

// ParsePaymentMethod maps a wire string to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentUPI, PaymentCredit, PaymentDebit, PaymentCOD:
		return PaymentMethod(s), true
	}
	return PaymentNone, false
}

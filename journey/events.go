package journey

// EventType discriminates user actions delivered to the engine.
type EventType string

const (
	// EventNext asks for the next catalog step with no sub-selection.
	EventNext EventType = "next"
	// EventSelectPurchaseType chooses online vs offline at the inventory step.
	EventSelectPurchaseType EventType = "select_purchase_type"
	// EventSelectStore picks a pickup store while the offline branch holds at
	// the inventory step.
	EventSelectStore EventType = "select_store"
	// EventSelectPaymentMethod picks a method on the payment step. Does not
	// advance the cursor.
	EventSelectPaymentMethod EventType = "select_payment_method"
	// EventConfirmPayment completes the payment step (non-empty UPI id, card
	// submit or COD confirm).
	EventConfirmPayment EventType = "confirm_payment"
	// EventLookupProduct is the storekeeper product-id lookup.
	EventLookupProduct EventType = "lookup_product"
	// EventFreeText and EventQuickReply drive the messenger journey.
	EventFreeText   EventType = "free_text"
	EventQuickReply EventType = "quick_reply"
	// EventToggleMore expands or collapses the product list on customer
	// journeys. Purely a view sub-state: no step executes.
	EventToggleMore EventType = "toggle_more"
	// EventRestart resets a completed journey back to its first step.
	EventRestart EventType = "restart"
)

// Event is a single user action. Only the fields relevant to Type are read.
type Event struct {
	Type          EventType     `json:"type"`
	PurchaseType  PurchaseType  `json:"purchase_type,omitempty"`
	StoreID       string        `json:"store_id,omitempty"`
	ProductID     string        `json:"product_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
	UpiID         string        `json:"upi_id,omitempty"`
	Text          string        `json:"text,omitempty"`
}

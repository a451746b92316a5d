package journey

import (
	"fmt"
	"time"

	"CartPilot/entity"
)

// Customer journey step ids.
const (
	StepDiscovery   = "discovery"
	StepInventory   = "inventory"
	StepPayment     = "payment"
	StepFulfillment = "fulfillment"
	StepLoyalty     = "loyalty"
	StepFeedback    = "feedback"
	// StepPickup is not part of the base order: it substitutes the remaining
	// steps when the offline branch completes at store selection.
	StepPickup = "offline_pickup"
)

// Storekeeper journey step ids.
const (
	StepRecommend      = "recommend"
	StepPaymentConfirm = "payment_confirm"
	StepDispatch       = "dispatch"
)

// Messenger response step ids.
const (
	StepMsgProducts = "msg_products"
	StepMsgPricing  = "msg_pricing"
	StepMsgOrders   = "msg_orders"
	StepMsgOffers   = "msg_offers"
	StepMsgFallback = "msg_fallback"
)

var customerSteps = []entity.StepDefinition{
	{ID: StepDiscovery, Title: "Product Discovery Agent", Category: entity.CategoryDiscovery, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
	{ID: StepInventory, Title: "Inventory Agent", Category: entity.CategoryInventory, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
	{ID: StepPayment, Title: "Payment Agent", Category: entity.CategoryPayment, MinDelay: 2000 * time.Millisecond, MaxDelay: 3000 * time.Millisecond},
	{ID: StepFulfillment, Title: "Fulfillment Agent", Category: entity.CategoryFulfillment, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
	{ID: StepLoyalty, Title: "Loyalty Agent", Category: entity.CategoryLoyalty, MinDelay: 1000 * time.Millisecond, MaxDelay: 2000 * time.Millisecond},
	{ID: StepFeedback, Title: "Feedback Agent", Category: entity.CategoryPostPurchase, MinDelay: 1000 * time.Millisecond, MaxDelay: 2000 * time.Millisecond},
}

// pickupStep substitutes payment/fulfillment/loyalty/feedback when store
// pickup supersedes them.
var pickupStep = entity.StepDefinition{
	ID:       StepPickup,
	Title:    "Store Pickup Agent",
	Category: entity.CategoryFulfillment,
	MinDelay: 1500 * time.Millisecond,
	MaxDelay: 2500 * time.Millisecond,
}

var storekeeperSteps = []entity.StepDefinition{
	{ID: StepRecommend, Title: "Recommendation Agent", Category: entity.CategoryRecommend, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
	{ID: StepPaymentConfirm, Title: "Payment Confirmation Agent", Category: entity.CategoryPayment, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
	{ID: StepDispatch, Title: "Dispatch Agent", Category: entity.CategoryDispatch, MinDelay: 1500 * time.Millisecond, MaxDelay: 2500 * time.Millisecond},
}

// messengerSteps are response templates, not an ordered path: the messenger
// journey picks one by matching input tokens and never completes.
var messengerSteps = []entity.StepDefinition{
	{ID: StepMsgProducts, Title: "Product Bot", Category: entity.CategoryDiscovery, MinDelay: 800 * time.Millisecond, MaxDelay: 1500 * time.Millisecond},
	{ID: StepMsgPricing, Title: "Pricing Bot", Category: entity.CategoryReply, MinDelay: 800 * time.Millisecond, MaxDelay: 1500 * time.Millisecond},
	{ID: StepMsgOrders, Title: "Order Status Bot", Category: entity.CategoryReply, MinDelay: 800 * time.Millisecond, MaxDelay: 1500 * time.Millisecond},
	{ID: StepMsgOffers, Title: "Offers Bot", Category: entity.CategoryReply, MinDelay: 800 * time.Millisecond, MaxDelay: 1500 * time.Millisecond},
	{ID: StepMsgFallback, Title: "Assistant Bot", Category: entity.CategoryReply, MinDelay: 500 * time.Millisecond, MaxDelay: 1000 * time.Millisecond},
}

// StepsFor returns the ordered step catalog for a journey kind. The returned
// slice is shared and must not be modified. An unknown kind is a programming
// error and panics.
func StepsFor(kind Kind) []entity.StepDefinition {
	switch kind {
	case KindCustomerOnline, KindCustomerOffline:
		return customerSteps
	case KindStorekeeper:
		return storekeeperSteps
	case KindMessenger:
		return messengerSteps
	}
	panic(fmt.Sprintf("journey: unknown kind %q", kind))
}

func messengerStep(id string) entity.StepDefinition {
	for _, s := range messengerSteps {
		if s.ID == id {
			return s
		}
	}
	panic(fmt.Sprintf("journey: unknown messenger step %q", id))
}

package entity

// OutputKind tags the payload variant carried by an executed step.
type OutputKind string

const (
	OutputProducts       OutputKind = "products"
	OutputAvailability   OutputKind = "availability"
	OutputReceipt        OutputKind = "receipt"
	OutputDelivery       OutputKind = "delivery"
	OutputReward         OutputKind = "reward"
	OutputPickup         OutputKind = "pickup"
	OutputRecommendation OutputKind = "recommendation"
	OutputReply          OutputKind = "reply"
)

// StepOutput is the closed payload variant for executed steps. Exactly one of
// the optional fields is set, according to Kind.
type StepOutput struct {
	Kind           OutputKind      `json:"kind"`
	Products       []Product       `json:"products,omitempty"`
	Availability   *Availability   `json:"availability,omitempty"`
	Receipt        *Receipt        `json:"receipt,omitempty"`
	Delivery       *Delivery       `json:"delivery,omitempty"`
	Reward         *Reward         `json:"reward,omitempty"`
	Pickup         *PickupOrder    `json:"pickup,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Reply          string          `json:"reply,omitempty"`
}

// Availability reports stock of the selected product across stores.
type Availability struct {
	Product Product `json:"product"`
	Online  bool    `json:"online"`
	Stores  []Store `json:"stores"`
}

type Receipt struct {
	OrderID string  `json:"order_id"`
	Product Product `json:"product"`
	Method  string  `json:"method"`
	Amount  float64 `json:"amount"`
}

type Delivery struct {
	OrderID  string `json:"order_id"`
	Carrier  string `json:"carrier"`
	Eta      string `json:"eta"`
	Tracking string `json:"tracking"`
}

type Reward struct {
	Points int    `json:"points"`
	Coupon string `json:"coupon"`
}

// PickupOrder is the synthesized offline-fulfillment payload: the order id,
// the chosen store and the customer picking up.
type PickupOrder struct {
	OrderID  string  `json:"order_id"`
	Product  Product `json:"product"`
	Store    Store   `json:"store"`
	Customer string  `json:"customer"`
}

// Recommendation pairs a looked-up product with the customer who bought it.
type Recommendation struct {
	Product  Product  `json:"product"`
	Customer Customer `json:"customer"`
}

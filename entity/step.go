package entity

import "time"

// StepCategory discriminates what kind of payload a step produces. The
// transition rules also key skip decisions off it.
type StepCategory string

const (
	CategoryDiscovery    StepCategory = "discovery"
	CategoryInventory    StepCategory = "inventory"
	CategoryPayment      StepCategory = "payment"
	CategoryFulfillment  StepCategory = "fulfillment"
	CategoryLoyalty      StepCategory = "loyalty"
	CategoryPostPurchase StepCategory = "post_purchase"
	CategoryRecommend    StepCategory = "recommend"
	CategoryDispatch     StepCategory = "dispatch"
	CategoryReply        StepCategory = "reply"
)

// StepDefinition is one immutable entry of a journey's step catalog.
type StepDefinition struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Category StepCategory  `json:"category"`
	MinDelay time.Duration `json:"-"`
	MaxDelay time.Duration `json:"-"`
}

// ExecutedStep is a committed entry of the journey log. Created once when a
// transition commits, never edited afterward.
type ExecutedStep struct {
	StepID   string       `json:"step_id"`
	Title    string       `json:"title"`
	Category StepCategory `json:"category"`
	Output   StepOutput   `json:"output"`
}

package journey

import (
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"CartPilot/entity"

	"github.com/google/uuid"
)

// CatalogService is the static, read-only commerce data the engine consults.
// The engine never writes through it.
type CatalogService interface {
	Products() []entity.Product
	Product(id string) (entity.Product, bool)
	Stores() []entity.Store
	Store(id string) (entity.Store, bool)
	PurchaserOf(productID string) (entity.Customer, bool)
}

// Transition describes the outcome of a single advance. The engine never
// applies it: the caller commits Next and the appended steps together after
// waiting out Delay, and publishes Record if set.
type Transition struct {
	Next   *State
	Steps  []entity.ExecutedStep
	Delay  time.Duration
	Busy   string
	Record *entity.SideEffectRecord
}

var productIDPattern = regexp.MustCompile(`^p\d+$`)

// Engine is the journey-parameterized transition engine. Advance is a pure
// function of (state, event) apart from generated order ids and the delay
// magnitude, which is drawn within the step's declared range.
type Engine struct {
	catalog CatalogService
	shopper entity.Customer
	log     *slog.Logger
}

// NewEngine creates a transition engine. The shopper identity is attached to
// receipts, pickup orders and side-effect records of the customer journeys.
func NewEngine(catalog CatalogService, shopper entity.Customer, log *slog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		shopper: shopper,
		log:     log,
	}
}

// Advance computes the next state for a user event. On error the input state
// is valid and unchanged; on success the caller owns applying the transition.
func (e *Engine) Advance(state *State, ev Event) (*Transition, error) {
	if state == nil {
		return nil, illegal("no session state")
	}

	switch state.Kind {
	case KindCustomerOnline, KindCustomerOffline:
		return e.advanceCustomer(state, ev)
	case KindStorekeeper:
		return e.advanceStorekeeper(state, ev)
	case KindMessenger:
		return e.advanceMessenger(state, ev)
	}
	panic(fmt.Sprintf("journey: unknown kind %q", state.Kind))
}

func (e *Engine) advanceCustomer(state *State, ev Event) (*Transition, error) {
	steps := StepsFor(state.Kind)

	if ev.Type == EventToggleMore {
		next := state.Clone()
		next.MoreShown = !next.MoreShown
		next.UpdatedAt = time.Now()
		return &Transition{Next: next}, nil
	}

	if state.Cursor >= len(steps) {
		return e.restart(state, ev)
	}

	def := steps[state.Cursor]

	switch def.ID {
	case StepDiscovery:
		if ev.Type != EventNext {
			return nil, illegal("event %s not valid at %s", ev.Type, def.ID)
		}
		next := state.Clone()
		product, err := e.pickProduct(ev.ProductID)
		if err != nil {
			return nil, err
		}
		next.Product = &product
		return e.execute(next, def, entity.StepOutput{
			Kind:     entity.OutputProducts,
			Products: e.catalog.Products(),
		}), nil

	case StepInventory:
		if ev.Type != EventSelectPurchaseType {
			return nil, illegal("choose where to buy before continuing")
		}
		if ev.PurchaseType != PurchaseOnline && ev.PurchaseType != PurchaseOffline {
			return nil, illegal("unknown purchase type %q", ev.PurchaseType)
		}
		next := state.Clone()
		next.PurchaseType = ev.PurchaseType
		product := next.selectedProduct(e.catalog)
		return e.execute(next, def, entity.StepOutput{
			Kind: entity.OutputAvailability,
			Availability: &entity.Availability{
				Product: product,
				Online:  product.InStock > 0,
				Stores:  e.catalog.Stores(),
			},
		}), nil

	case StepPayment:
		if state.PurchaseType == PurchaseOffline {
			return e.offlineStoreSelection(state, ev, len(steps))
		}
		return e.onlinePayment(state, ev, def)
	}

	// Fulfillment, loyalty and feedback are plain linear steps on the online
	// branch; the offline branch never reaches them.
	if ev.Type != EventNext {
		return nil, illegal("event %s not valid at %s", ev.Type, def.ID)
	}
	next := state.Clone()
	return e.execute(next, def, e.linearOutput(next, def)), nil
}

// offlineStoreSelection holds the journey at the inventory position until a
// store is picked. Store confirmation is order placement on this branch: the
// side effect fires here and the synthesized pickup step replaces payment,
// loyalty and post-purchase entirely.
func (e *Engine) offlineStoreSelection(state *State, ev Event, catalogLen int) (*Transition, error) {
	if ev.Type != EventSelectStore {
		return nil, illegal("select a pickup store to continue")
	}
	store, ok := e.catalog.Store(ev.StoreID)
	if !ok {
		return nil, illegal("unknown store %q", ev.StoreID)
	}

	next := state.Clone()
	next.Store = &store
	next.OrderID = uuid.NewString()
	product := next.selectedProduct(e.catalog)

	tr := e.execute(next, pickupStep, entity.StepOutput{
		Kind: entity.OutputPickup,
		Pickup: &entity.PickupOrder{
			OrderID:  next.OrderID,
			Product:  product,
			Store:    store,
			Customer: e.shopper.Name,
		},
	})
	tr.Next.Cursor = catalogLen
	tr.Record = &entity.SideEffectRecord{
		Type:      entity.SideEffectOfflinePickup,
		Product:   product,
		Store:     &store,
		UserID:    e.shopper.ID,
		UserName:  e.shopper.Name,
		Timestamp: time.Now(),
	}

	e.log.Debug("journey: offline pickup placed",
		slog.String("order_id", next.OrderID),
		slog.String("store_id", store.ID),
	)
	return tr, nil
}

func (e *Engine) onlinePayment(state *State, ev Event, def entity.StepDefinition) (*Transition, error) {
	switch ev.Type {
	case EventSelectPaymentMethod:
		if _, ok := ParsePaymentMethod(string(ev.PaymentMethod)); !ok {
			return nil, illegal("unknown payment method %q", ev.PaymentMethod)
		}
		// Sub-selection only: no step executes, no cursor movement.
		next := state.Clone()
		next.PaymentMethod = ev.PaymentMethod
		next.UpdatedAt = time.Now()
		return &Transition{Next: next}, nil

	case EventConfirmPayment:
		method := state.PaymentMethod
		if ev.PaymentMethod != PaymentNone {
			if _, ok := ParsePaymentMethod(string(ev.PaymentMethod)); !ok {
				return nil, illegal("unknown payment method %q", ev.PaymentMethod)
			}
			method = ev.PaymentMethod
		}
		if method == PaymentNone {
			return nil, illegal("pick a payment method first")
		}
		if method == PaymentUPI && strings.TrimSpace(ev.UpiID) == "" {
			return nil, illegal("UPI id must not be empty")
		}
		next := state.Clone()
		next.PaymentMethod = method
		next.OrderID = uuid.NewString()
		product := next.selectedProduct(e.catalog)

		tr := e.execute(next, def, entity.StepOutput{
			Kind: entity.OutputReceipt,
			Receipt: &entity.Receipt{
				OrderID: next.OrderID,
				Product: product,
				Method:  string(next.PaymentMethod),
				Amount:  product.Price,
			},
		})
		tr.Record = &entity.SideEffectRecord{
			Type:      entity.SideEffectOnlinePurchase,
			Product:   product,
			UserID:    e.shopper.ID,
			UserName:  e.shopper.Name,
			Timestamp: time.Now(),
		}
		return tr, nil
	}
	return nil, illegal("complete payment to continue")
}

func (e *Engine) linearOutput(state *State, def entity.StepDefinition) entity.StepOutput {
	product := state.selectedProduct(e.catalog)
	switch def.Category {
	case entity.CategoryFulfillment:
		return entity.StepOutput{
			Kind: entity.OutputDelivery,
			Delivery: &entity.Delivery{
				OrderID:  state.OrderID,
				Carrier:  "SwiftShip",
				Eta:      "2 days",
				Tracking: "TRK-" + strings.ToUpper(uuid.NewString()[:8]),
			},
		}
	case entity.CategoryLoyalty:
		return entity.StepOutput{
			Kind: entity.OutputReward,
			Reward: &entity.Reward{
				Points: int(product.Price / 10),
				Coupon: "WELCOME10",
			},
		}
	}
	return entity.StepOutput{
		Kind:  entity.OutputReply,
		Reply: "Thanks for shopping with us! How was your experience?",
	}
}

func (e *Engine) advanceStorekeeper(state *State, ev Event) (*Transition, error) {
	steps := StepsFor(state.Kind)

	if state.Cursor >= len(steps) {
		return e.restart(state, ev)
	}

	def := steps[state.Cursor]

	switch def.ID {
	case StepRecommend:
		if ev.Type != EventLookupProduct {
			return nil, illegal("event %s not valid at %s", ev.Type, def.ID)
		}
		id := strings.ToLower(strings.TrimSpace(ev.ProductID))
		if !productIDPattern.MatchString(id) {
			return nil, &Error{Kind: ErrProductNotFound, Message: fmt.Sprintf("malformed product id %q", ev.ProductID)}
		}
		product, ok := e.catalog.Product(id)
		if !ok {
			return nil, &Error{Kind: ErrProductNotFound, Message: fmt.Sprintf("no product %q in catalog", id)}
		}
		customer, ok := e.catalog.PurchaserOf(id)
		if !ok {
			return nil, &Error{Kind: ErrNoMatchingCustomer, Message: fmt.Sprintf("no customer on record for product %q", id)}
		}
		next := state.Clone()
		next.Product = &product
		return e.execute(next, def, entity.StepOutput{
			Kind: entity.OutputRecommendation,
			Recommendation: &entity.Recommendation{
				Product:  product,
				Customer: customer,
			},
		}), nil

	case StepPaymentConfirm:
		if ev.Type != EventConfirmPayment {
			return nil, illegal("confirm customer payment to continue")
		}
		next := state.Clone()
		next.OrderID = uuid.NewString()
		method := string(ev.PaymentMethod)
		if method == "" {
			method = string(PaymentCOD)
		}
		product := next.selectedProduct(e.catalog)
		return e.execute(next, def, entity.StepOutput{
			Kind: entity.OutputReceipt,
			Receipt: &entity.Receipt{
				OrderID: next.OrderID,
				Product: product,
				Method:  method,
				Amount:  product.Price,
			},
		}), nil
	}

	// Dispatch.
	if ev.Type != EventNext {
		return nil, illegal("event %s not valid at %s", ev.Type, def.ID)
	}
	next := state.Clone()
	return e.execute(next, def, entity.StepOutput{
		Kind: entity.OutputDelivery,
		Delivery: &entity.Delivery{
			OrderID:  next.OrderID,
			Carrier:  "StoreVan",
			Eta:      "today",
			Tracking: "DSP-" + strings.ToUpper(uuid.NewString()[:8]),
		},
	}), nil
}

// advanceMessenger matches free text and quick replies against the pattern
// table. Unmatched input is not an error: it falls through to the fallback
// reply and changes no selection state. This journey has no terminal state.
func (e *Engine) advanceMessenger(state *State, ev Event) (*Transition, error) {
	if ev.Type != EventFreeText && ev.Type != EventQuickReply {
		return nil, illegal("event %s not valid for messenger", ev.Type)
	}

	var def entity.StepDefinition
	if ev.Type == EventQuickReply {
		def = matchQuickReply(ev.Text)
	} else {
		def = matchFreeText(ev.Text)
	}

	next := state.Clone()
	return e.execute(next, def, e.messengerOutput(def)), nil
}

// Quick-reply labels shown by the messenger surface.
const (
	QuickShowProducts = "Show Products"
	QuickCheckPrice   = "Check Price"
	QuickTrackOrder   = "Track Order"
	QuickOffers       = "Offers"
)

func matchQuickReply(label string) entity.StepDefinition {
	switch strings.TrimSpace(label) {
	case QuickShowProducts:
		return messengerStep(StepMsgProducts)
	case QuickCheckPrice:
		return messengerStep(StepMsgPricing)
	case QuickTrackOrder:
		return messengerStep(StepMsgOrders)
	case QuickOffers:
		return messengerStep(StepMsgOffers)
	}
	return messengerStep(StepMsgFallback)
}

var freeTextKeywords = []struct {
	words []string
	step  string
}{
	{[]string{"shirt", "shoe", "jean", "watch", "product"}, StepMsgProducts},
	{[]string{"price", "cost", "how much"}, StepMsgPricing},
	{[]string{"order", "track", "deliver"}, StepMsgOrders},
	{[]string{"offer", "discount", "sale", "coupon"}, StepMsgOffers},
}

func matchFreeText(text string) entity.StepDefinition {
	lower := strings.ToLower(text)
	for _, group := range freeTextKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return messengerStep(group.step)
			}
		}
	}
	return messengerStep(StepMsgFallback)
}

func (e *Engine) messengerOutput(def entity.StepDefinition) entity.StepOutput {
	switch def.ID {
	case StepMsgProducts:
		return entity.StepOutput{Kind: entity.OutputProducts, Products: e.catalog.Products()}
	case StepMsgPricing:
		return entity.StepOutput{Kind: entity.OutputReply, Reply: "Prices start at ₹499. Ask about any product for details."}
	case StepMsgOrders:
		return entity.StepOutput{Kind: entity.OutputReply, Reply: "Your latest order is out for delivery and should arrive within 2 days."}
	case StepMsgOffers:
		return entity.StepOutput{Kind: entity.OutputReply, Reply: "Use coupon WELCOME10 for 10% off your first order."}
	}
	return entity.StepOutput{Kind: entity.OutputReply, Reply: "How can I help you today? Try 'Show Products' or ask about an order."}
}

// restart resets a completed journey: cursor back to 0, log and selections
// cleared. Published side-effect records are not touched.
func (e *Engine) restart(state *State, ev Event) (*Transition, error) {
	if ev.Type != EventNext && ev.Type != EventRestart {
		return nil, illegal("journey complete; restart to continue")
	}
	e.log.Debug("journey: restarting", slog.String("kind", string(state.Kind)))
	return &Transition{Next: NewState(state.Kind)}, nil
}

// execute appends the step's log entry to the cloned state and advances the
// cursor by one. Branch-specific cursor jumps are applied by the caller on
// top of this.
func (e *Engine) execute(next *State, def entity.StepDefinition, out entity.StepOutput) *Transition {
	step := entity.ExecutedStep{
		StepID:   def.ID,
		Title:    def.Title,
		Category: def.Category,
		Output:   out,
	}
	next.Log = append(next.Log, step)
	if next.Kind != KindMessenger {
		next.Cursor++
	}
	next.UpdatedAt = time.Now()

	return &Transition{
		Next:  next,
		Steps: []entity.ExecutedStep{step},
		Delay: drawDelay(def),
		Busy:  fmt.Sprintf("%s is working on it...", def.Title),
	}
}

func (s *State) selectedProduct(catalog CatalogService) entity.Product {
	if s.Product != nil {
		return *s.Product
	}
	products := catalog.Products()
	if len(products) == 0 {
		return entity.Product{}
	}
	return products[0]
}

func (e *Engine) pickProduct(id string) (entity.Product, error) {
	if id == "" {
		products := e.catalog.Products()
		if len(products) == 0 {
			return entity.Product{}, illegal("product catalog is empty")
		}
		return products[0], nil
	}
	product, ok := e.catalog.Product(strings.ToLower(id))
	if !ok {
		return entity.Product{}, illegal("unknown product %q", id)
	}
	return product, nil
}

func drawDelay(def entity.StepDefinition) time.Duration {
	if def.MaxDelay <= def.MinDelay {
		return def.MinDelay
	}
	return def.MinDelay + time.Duration(rand.Int63n(int64(def.MaxDelay-def.MinDelay)))
}

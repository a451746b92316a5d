package journey_test

import (
	"io"
	"log/slog"
	"testing"

	"CartPilot/entity"
	"CartPilot/journey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products   []entity.Product
	stores     []entity.Store
	purchasers map[string]entity.Customer
}

func (f *fakeCatalog) Products() []entity.Product { return f.products }

func (f *fakeCatalog) Product(id string) (entity.Product, bool) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (f *fakeCatalog) Stores() []entity.Store { return f.stores }

func (f *fakeCatalog) Store(id string) (entity.Store, bool) {
	for _, s := range f.stores {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Store{}, false
}

func (f *fakeCatalog) PurchaserOf(productID string) (entity.Customer, bool) {
	c, ok := f.purchasers[productID]
	return c, ok
}

var testShopper = entity.Customer{ID: "u0001", Name: "Asha Mehta"}

func newTestEngine() *journey.Engine {
	catalog := &fakeCatalog{
		products: []entity.Product{
			{ID: "p001", Name: "Classic Oxford Shirt", Group: "shirts", Price: 1299, InStock: 24},
			{ID: "p002", Name: "Slim Fit Denim Jeans", Group: "jeans", Price: 1899, InStock: 12},
		},
		stores: []entity.Store{
			{ID: "s01", Name: "Central", City: "Mumbai"},
			{ID: "s02", Name: "Mall Outlet", City: "Mumbai"},
		},
		purchasers: map[string]entity.Customer{
			"p001": {ID: "u0002", Name: "Rohan Iyer"},
		},
	}
	return journey.NewEngine(catalog, testShopper, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// apply advances the state through the engine, failing the test on any error.
func apply(t *testing.T, e *journey.Engine, state *journey.State, ev journey.Event) (*journey.State, *journey.Transition) {
	t.Helper()
	tr, err := e.Advance(state, ev)
	require.NoError(t, err)
	return tr.Next, tr
}

func TestOnlineJourney(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)

	var record *entity.SideEffectRecord

	events := []journey.Event{
		{Type: journey.EventNext},
		{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOnline},
		{Type: journey.EventConfirmPayment, PaymentMethod: journey.PaymentUPI, UpiID: "asha@upi"},
		{Type: journey.EventNext},
		{Type: journey.EventNext},
		{Type: journey.EventNext},
	}

	for i, ev := range events {
		next, tr := apply(t, e, state, ev)
		assert.Equal(t, i+1, next.Cursor, "cursor after event %d", i)
		assert.Len(t, next.Log, i+1, "log after event %d", i)
		if tr.Record != nil {
			record = tr.Record
		}
		state = next
	}

	assert.Equal(t, 6, state.Cursor)
	assert.Len(t, state.Log, 6)
	assert.True(t, state.Complete())
	require.NotNil(t, record)
	assert.Equal(t, entity.SideEffectOnlinePurchase, record.Type)
	assert.Equal(t, "u0001", record.UserID)
	assert.Nil(t, record.Store)

	// the receipt carries the confirmed method
	receipt := state.Log[2].Output.Receipt
	require.NotNil(t, receipt)
	assert.Equal(t, "upi", receipt.Method)
}

func TestOfflineJourney(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)

	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOffline})
	assert.Equal(t, 2, state.Cursor)

	// the engine holds at the store selection until a store is picked
	_, err := e.Advance(state, journey.Event{Type: journey.EventNext})
	require.Error(t, err)
	assert.Equal(t, journey.ErrIllegalTransition, journey.KindOf(err))

	state, tr := apply(t, e, state, journey.Event{Type: journey.EventSelectStore, StoreID: "s01"})

	assert.Equal(t, 6, state.Cursor, "store selection jumps to catalog end")
	assert.Len(t, state.Log, 3, "two executed steps plus synthesized pickup")
	assert.True(t, state.Complete())

	pickup := state.Log[2].Output.Pickup
	require.NotNil(t, pickup)
	assert.Equal(t, "s01", pickup.Store.ID)
	assert.Equal(t, testShopper.Name, pickup.Customer)
	assert.NotEmpty(t, pickup.OrderID)

	// side effect fires on the store-selection transition itself
	require.NotNil(t, tr.Record)
	assert.Equal(t, entity.SideEffectOfflinePickup, tr.Record.Type)
	require.NotNil(t, tr.Record.Store)
	assert.Equal(t, "s01", tr.Record.Store.ID)
}

func TestOfflineSkipInvariant(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOffline)

	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOffline})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectStore, StoreID: "s02"})

	for _, step := range state.Log {
		assert.NotEqual(t, entity.CategoryPayment, step.Category)
		assert.NotEqual(t, entity.CategoryLoyalty, step.Category)
		assert.NotEqual(t, entity.CategoryPostPurchase, step.Category)
	}
}

func TestAdvanceIsPureAndDeterministic(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})

	before := state.Clone()
	ev := journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOnline}

	first, err := e.Advance(state, ev)
	require.NoError(t, err)
	second, err := e.Advance(state, ev)
	require.NoError(t, err)

	// input state untouched
	assert.Equal(t, before.Cursor, state.Cursor)
	assert.Equal(t, len(before.Log), len(state.Log))

	// identical outcomes apart from the delay magnitude
	assert.Equal(t, first.Next.Cursor, second.Next.Cursor)
	assert.Equal(t, first.Next.PurchaseType, second.Next.PurchaseType)
	require.Len(t, second.Steps, len(first.Steps))
	for i := range first.Steps {
		assert.Equal(t, first.Steps[i].StepID, second.Steps[i].StepID)
	}
}

func TestDelayWithinDeclaredRange(t *testing.T) {
	e := newTestEngine()
	def := journey.StepsFor(journey.KindCustomerOnline)[0]

	for i := 0; i < 25; i++ {
		tr, err := e.Advance(journey.NewState(journey.KindCustomerOnline), journey.Event{Type: journey.EventNext})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tr.Delay, def.MinDelay)
		assert.LessOrEqual(t, tr.Delay, def.MaxDelay)
	}
}

func TestIllegalTransitions(t *testing.T) {
	e := newTestEngine()

	atInventory := journey.NewState(journey.KindCustomerOnline)
	atInventory, _ = apply(t, e, atInventory, journey.Event{Type: journey.EventNext})

	atOnlinePayment := atInventory.Clone()
	atOnlinePayment, _ = apply(t, e, atOnlinePayment, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOnline})

	tests := []struct {
		name  string
		state *journey.State
		ev    journey.Event
	}{
		{"store pick without offline purchase type", atOnlinePayment, journey.Event{Type: journey.EventSelectStore, StoreID: "s01"}},
		{"store pick at discovery", journey.NewState(journey.KindCustomerOnline), journey.Event{Type: journey.EventSelectStore, StoreID: "s01"}},
		{"plain next at inventory", atInventory, journey.Event{Type: journey.EventNext}},
		{"invalid purchase type", atInventory, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: "pickup"}},
		{"confirm before method", atOnlinePayment, journey.Event{Type: journey.EventConfirmPayment}},
		{"UPI with empty id", atOnlinePayment, journey.Event{Type: journey.EventConfirmPayment, PaymentMethod: journey.PaymentUPI}},
		{"free text on customer journey", atInventory, journey.Event{Type: journey.EventFreeText, Text: "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := tt.state.Cursor
			logLen := len(tt.state.Log)

			_, err := e.Advance(tt.state, tt.ev)
			require.Error(t, err)
			assert.Equal(t, journey.ErrIllegalTransition, journey.KindOf(err))

			// rejected events leave the state untouched
			assert.Equal(t, cursor, tt.state.Cursor)
			assert.Len(t, tt.state.Log, logLen)
		})
	}
}

func TestPaymentMethodSubSelection(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOnline})

	// picking a method does not advance the cursor or append a step
	state, tr := apply(t, e, state, journey.Event{Type: journey.EventSelectPaymentMethod, PaymentMethod: journey.PaymentCOD})
	assert.Equal(t, 2, state.Cursor)
	assert.Len(t, state.Log, 2)
	assert.Empty(t, tr.Steps)
	assert.Equal(t, journey.PaymentCOD, state.PaymentMethod)

	// the stored method completes without restating it
	state, tr = apply(t, e, state, journey.Event{Type: journey.EventConfirmPayment})
	assert.Equal(t, 3, state.Cursor)
	require.NotNil(t, tr.Record)
	assert.Equal(t, "cod", state.Log[2].Output.Receipt.Method)
}

func TestToggleMoreIsViewOnly(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})

	state, tr := apply(t, e, state, journey.Event{Type: journey.EventToggleMore})
	assert.True(t, state.MoreShown)
	assert.Empty(t, tr.Steps)
	assert.Equal(t, 1, state.Cursor)

	state, _ = apply(t, e, state, journey.Event{Type: journey.EventToggleMore})
	assert.False(t, state.MoreShown)
}

func TestRestartFromTerminal(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindCustomerOnline)
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectPurchaseType, PurchaseType: journey.PurchaseOffline})
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventSelectStore, StoreID: "s01"})
	require.True(t, state.Complete())

	for i := 0; i < 3; i++ {
		next, _ := apply(t, e, state, journey.Event{Type: journey.EventNext})
		assert.Equal(t, 0, next.Cursor)
		assert.Empty(t, next.Log)
		assert.Equal(t, journey.PurchaseNone, next.PurchaseType)
		assert.Nil(t, next.Store)
		assert.Nil(t, next.Product)
		assert.Equal(t, journey.PaymentNone, next.PaymentMethod)
		assert.Empty(t, next.OrderID)
	}
}

func TestStorekeeperJourney(t *testing.T) {
	e := newTestEngine()

	t.Run("product not found", func(t *testing.T) {
		state := journey.NewState(journey.KindStorekeeper)
		_, err := e.Advance(state, journey.Event{Type: journey.EventLookupProduct, ProductID: "p999"})
		require.Error(t, err)
		assert.Equal(t, journey.ErrProductNotFound, journey.KindOf(err))
		assert.Equal(t, 0, state.Cursor)
		assert.Empty(t, state.Log)
	})

	t.Run("malformed product id", func(t *testing.T) {
		state := journey.NewState(journey.KindStorekeeper)
		_, err := e.Advance(state, journey.Event{Type: journey.EventLookupProduct, ProductID: "shirt"})
		require.Error(t, err)
		assert.Equal(t, journey.ErrProductNotFound, journey.KindOf(err))
	})

	t.Run("no matching customer", func(t *testing.T) {
		state := journey.NewState(journey.KindStorekeeper)
		_, err := e.Advance(state, journey.Event{Type: journey.EventLookupProduct, ProductID: "p002"})
		require.Error(t, err)
		assert.Equal(t, journey.ErrNoMatchingCustomer, journey.KindOf(err))
		assert.Equal(t, 0, state.Cursor)
		assert.Empty(t, state.Log)
	})

	t.Run("full journey with case-insensitive id", func(t *testing.T) {
		state := journey.NewState(journey.KindStorekeeper)
		state, _ = apply(t, e, state, journey.Event{Type: journey.EventLookupProduct, ProductID: "P001"})

		rec := state.Log[0].Output.Recommendation
		require.NotNil(t, rec)
		assert.Equal(t, "p001", rec.Product.ID)
		assert.Equal(t, "Rohan Iyer", rec.Customer.Name)

		state, _ = apply(t, e, state, journey.Event{Type: journey.EventConfirmPayment})
		state, _ = apply(t, e, state, journey.Event{Type: journey.EventNext})

		assert.Equal(t, 3, state.Cursor)
		assert.Len(t, state.Log, 3)
		assert.True(t, state.Complete())
		assert.NotNil(t, state.Log[2].Output.Delivery)
	})
}

func TestMessengerJourney(t *testing.T) {
	e := newTestEngine()
	state := journey.NewState(journey.KindMessenger)

	state, _ = apply(t, e, state, journey.Event{Type: journey.EventFreeText, Text: "show me shirts"})
	require.Len(t, state.Log, 1)
	assert.Equal(t, journey.StepMsgProducts, state.Log[0].StepID)

	state, _ = apply(t, e, state, journey.Event{Type: journey.EventQuickReply, Text: journey.QuickShowProducts})
	require.Len(t, state.Log, 2)
	assert.Equal(t, journey.StepMsgProducts, state.Log[1].StepID)
	assert.Equal(t, entity.OutputProducts, state.Log[1].Output.Kind)
	assert.NotEmpty(t, state.Log[1].Output.Products)

	// unmatched input falls through to the default reply and changes nothing
	state, _ = apply(t, e, state, journey.Event{Type: journey.EventFreeText, Text: "asdkjh"})
	require.Len(t, state.Log, 3)
	assert.Equal(t, journey.StepMsgFallback, state.Log[2].StepID)
	assert.Equal(t, journey.PurchaseNone, state.PurchaseType)
	assert.Nil(t, state.Store)
	assert.Equal(t, journey.PaymentNone, state.PaymentMethod)

	// never terminal
	assert.False(t, state.Complete())
	assert.Equal(t, 0, state.Cursor)
}

func TestMessengerPatternTable(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		text string
		step string
	}{
		{"how much does it cost", "msg_pricing"},
		{"where is my order", "msg_orders"},
		{"any discount running?", "msg_offers"},
		{"I want new shoes", "msg_products"},
		{"blah", "msg_fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tr, err := e.Advance(journey.NewState(journey.KindMessenger), journey.Event{Type: journey.EventFreeText, Text: tt.text})
			require.NoError(t, err)
			require.Len(t, tr.Steps, 1)
			assert.Equal(t, tt.step, tr.Steps[0].StepID)
		})
	}
}

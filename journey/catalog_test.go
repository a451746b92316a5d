package journey_test

import (
	"testing"
	"time"

	"CartPilot/entity"
	"CartPilot/journey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsForCustomerCatalog(t *testing.T) {
	steps := journey.StepsFor(journey.KindCustomerOnline)
	require.Len(t, steps, 6)

	wantOrder := []string{
		journey.StepDiscovery,
		journey.StepInventory,
		journey.StepPayment,
		journey.StepFulfillment,
		journey.StepLoyalty,
		journey.StepFeedback,
	}
	for i, id := range wantOrder {
		assert.Equal(t, id, steps[i].ID)
	}

	// both customer surfaces share the same catalog
	assert.Equal(t, steps, journey.StepsFor(journey.KindCustomerOffline))
}

func TestStepsForStorekeeperCatalog(t *testing.T) {
	steps := journey.StepsFor(journey.KindStorekeeper)
	require.Len(t, steps, 3)
	assert.Equal(t, journey.StepRecommend, steps[0].ID)
	assert.Equal(t, journey.StepPaymentConfirm, steps[1].ID)
	assert.Equal(t, journey.StepDispatch, steps[2].ID)
}

func TestStepsForDelayRanges(t *testing.T) {
	for _, kind := range []journey.Kind{journey.KindCustomerOnline, journey.KindStorekeeper, journey.KindMessenger} {
		for _, def := range journey.StepsFor(kind) {
			assert.Greater(t, def.MinDelay, time.Duration(0), "step %s has no delay floor", def.ID)
			assert.GreaterOrEqual(t, def.MaxDelay, def.MinDelay, "step %s range inverted", def.ID)
			assert.NotEmpty(t, def.Title)
			assert.NotEqual(t, entity.StepCategory(""), def.Category)
		}
	}
}

func TestStepsForUnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		journey.StepsFor(journey.Kind("kiosk_v2"))
	})
}

func TestParseKind(t *testing.T) {
	kind, ok := journey.ParseKind("storekeeper")
	require.True(t, ok)
	assert.Equal(t, journey.KindStorekeeper, kind)

	_, ok = journey.ParseKind("unknown")
	assert.False(t, ok)
}

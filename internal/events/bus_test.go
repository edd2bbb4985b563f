package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var received []*Event
	bus.Subscribe(SeriesAdvanced, func(e *Event) {
		received = append(received, e)
	})

	bus.Publish(&SeriesAdvancedData{Time: 12, Price: 101.5, SeriesLen: 13})

	require.Len(t, received, 1)
	assert.Equal(t, SeriesAdvanced, received[0].Type)

	data, ok := received[0].Data.(*SeriesAdvancedData)
	require.True(t, ok)
	assert.Equal(t, 12, data.Time)
	assert.Equal(t, 101.5, data.Price)
}

func TestPublishSkipsOtherTypes(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	calls := 0
	bus.Subscribe(LayoutChanged, func(e *Event) { calls++ })

	bus.Publish(&NewsAppendedData{Added: 5, Total: 13})

	assert.Zero(t, calls)
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var seen []EventType
	bus.SubscribeAll([]EventType{StateChanged, OrderCommitted}, func(e *Event) {
		seen = append(seen, e.Type)
	})

	bus.Publish(&StateChangedData{Revision: 1})
	bus.Publish(&OrderCommittedData{Side: "buy", Symbol: "BTC"})
	bus.Publish(&SeriesAdvancedData{})

	assert.Equal(t, []EventType{StateChanged, OrderCommitted}, seen)
}

func TestMultipleSubscribersSameType(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	a, b := 0, 0
	bus.Subscribe(StateChanged, func(e *Event) { a++ })
	bus.Subscribe(StateChanged, func(e *Event) { b++ })

	bus.Publish(&StateChangedData{Revision: 7})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	calls := 0
	cancel := bus.Subscribe(StateChanged, func(e *Event) { calls++ })

	bus.Publish(&StateChangedData{Revision: 1})
	cancel()
	bus.Publish(&StateChangedData{Revision: 2})

	assert.Equal(t, 1, calls)
}

func TestAllTypesCovered(t *testing.T) {
	assert.Len(t, AllTypes(), 6)
}

func TestEventDataTypes(t *testing.T) {
	cases := []struct {
		data EventData
		want EventType
	}{
		{&SeriesAdvancedData{}, SeriesAdvanced},
		{&PortfolioRevaluedData{}, PortfolioRevalued},
		{&OrderCommittedData{}, OrderCommitted},
		{&LayoutChangedData{}, LayoutChanged},
		{&NewsAppendedData{}, NewsAppended},
		{&StateChangedData{}, StateChanged},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.data.EventType())
	}
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveSpliceSemantics(t *testing.T) {
	l := Default()

	got := Move(l, 0, 2)

	assert.Equal(t, Layout{WidgetOrders, WidgetPortfolio, WidgetCharts, WidgetNews}, got)
}

func TestMoveBackward(t *testing.T) {
	l := Default()

	got := Move(l, 3, 0)

	assert.Equal(t, Layout{WidgetNews, WidgetCharts, WidgetOrders, WidgetPortfolio}, got)
}

func TestMoveSameIndexIsNoOp(t *testing.T) {
	l := Default()
	for i := range l {
		assert.Equal(t, l, Move(l, i, i))
	}
}

func TestMovePreservesWidgetSet(t *testing.T) {
	l := Default()

	for from := -1; from <= len(l); from++ {
		for to := -2; to <= len(l)+1; to++ {
			got := Move(l, from, to)

			require.Len(t, got, len(l))
			seen := map[WidgetID]int{}
			for _, id := range got {
				seen[id]++
			}
			for _, id := range l {
				assert.Equal(t, 1, seen[id], "move(%d,%d) lost or duplicated %s", from, to, id)
			}
		}
	}
}

func TestMoveInvalidFromIsNoOp(t *testing.T) {
	l := Default()

	assert.Equal(t, l, Move(l, -1, 2))
	assert.Equal(t, l, Move(l, len(l), 2))
}

func TestMoveClampsTo(t *testing.T) {
	l := Default()

	assert.Equal(t, Move(l, 1, 0), Move(l, 1, -5))
	assert.Equal(t, Move(l, 1, len(l)-1), Move(l, 1, 99))
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	l := Default()
	before := make(Layout, len(l))
	copy(before, l)

	_ = Move(l, 0, 3)

	assert.Equal(t, before, l)
}

func TestMoveFromPayload(t *testing.T) {
	l := Default()

	got := MoveFromPayload(l, "0", 2)
	assert.Equal(t, Layout{WidgetOrders, WidgetPortfolio, WidgetCharts, WidgetNews}, got)
}

func TestMoveFromPayloadBadPayload(t *testing.T) {
	l := Default()

	assert.Equal(t, l, MoveFromPayload(l, "not-an-index", 2))
	assert.Equal(t, l, MoveFromPayload(l, "", 1))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"charts", "orders", "portfolio", "news"}, Default().Strings())
}

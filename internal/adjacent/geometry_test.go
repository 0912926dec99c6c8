package adjacent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"left", Left},
		{"RIGHT", Right},
		{" up ", Up},
		{"d", Down},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestRectCoversPointIsInclusive(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	assert.True(t, r.CoversPoint(10, 10))
	assert.True(t, r.CoversPoint(110, 60))
	assert.False(t, r.CoversPoint(111, 60))
	assert.False(t, r.CoversPoint(9, 10))
}

func TestLeadingEdgeAhead(t *testing.T) {
	focused := Rect{X: 100, Y: 100, Width: 100, Height: 100}
	tests := []struct {
		name string
		w    Rect
		d    Direction
		want bool
	}{
		{"left of focused", Rect{X: 0, Y: 100, Width: 50, Height: 50}, Left, true},
		{"same x is not left", Rect{X: 100, Y: 0, Width: 50, Height: 50}, Left, false},
		{"right of focused", Rect{X: 101, Y: 0, Width: 10, Height: 10}, Right, true},
		{"same x is not right", Rect{X: 100, Y: 0, Width: 500, Height: 10}, Right, false},
		{"above focused", Rect{X: 0, Y: 99, Width: 10, Height: 10}, Up, true},
		{"below focused", Rect{X: 0, Y: 150, Width: 10, Height: 10}, Down, true},
		{"above is not below", Rect{X: 0, Y: 50, Width: 10, Height: 10}, Down, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LeadingEdgeAhead(focused, tt.w, tt.d))
		})
	}
}

func TestExtendsPastRequiresTrailingEdgeForRightAndDown(t *testing.T) {
	focused := Rect{X: 0, Y: 0, Width: 200, Height: 200}
	inside := Rect{X: 50, Y: 50, Width: 50, Height: 50}

	assert.True(t, LeadingEdgeAhead(focused, inside, Right))
	assert.False(t, ExtendsPast(focused, inside, Right))
	assert.True(t, LeadingEdgeAhead(focused, inside, Down))
	assert.False(t, ExtendsPast(focused, inside, Down))

	beyond := Rect{X: 150, Y: 150, Width: 100, Height: 100}
	assert.True(t, ExtendsPast(focused, beyond, Right))
	assert.True(t, ExtendsPast(focused, beyond, Down))

	// Left and Up only look at the leading edge.
	from := Rect{X: 100, Y: 100, Width: 50, Height: 50}
	overlapping := Rect{X: 90, Y: 90, Width: 500, Height: 500}
	assert.True(t, ExtendsPast(from, overlapping, Left))
	assert.True(t, ExtendsPast(from, overlapping, Up))
}

func TestParseSelectionPolicy(t *testing.T) {
	tests := []struct {
		in     string
		want   SelectionPolicy
		wantOK bool
	}{
		{"closest", PolicyClosest, true},
		{"highest-z-order", PolicyHighestZOrder, true},
		{"highest_z_order", PolicyHighestZOrder, true},
		{"Closest-Visible-Corner", PolicyClosestVisibleCorner, true},
		{"", PolicyClosest, false},
		{"random", PolicyClosest, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSelectionPolicy(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

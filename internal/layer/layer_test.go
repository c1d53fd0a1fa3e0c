package layer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},
		{29, 19, true},
		{15, 15, true},
		{9, 10, false},
		{30, 10, false},
		{10, 9, false},
		{10, 20, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, r.Contains(tc.x, tc.y), "Contains(%d, %d)", tc.x, tc.y)
	}
}

func TestHitMap_Priority(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("background", 0, 0, 100, 100, nil)
	hm.AddRect("panel", 10, 10, 80, 80, "panel-data")
	hm.AddRect("button", 40, 40, 20, 20, nil)

	r := hm.Test(50, 50)
	require.NotNil(t, r)
	assert.Equal(t, "button", r.ID)

	r = hm.Test(15, 15)
	require.NotNil(t, r)
	assert.Equal(t, "panel", r.ID)
	assert.Equal(t, "panel-data", r.Data)

	assert.Nil(t, hm.Test(150, 150))

	hm.Clear()
	assert.Equal(t, 0, hm.Len())
	assert.Nil(t, hm.Test(50, 50))
}

func TestCompose_Dimensions(t *testing.T) {
	out, placements := Compose("hello\nworld", 10, 4)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "hello     ", lines[0])
	assert.Equal(t, "          ", lines[3])
	assert.Empty(t, placements)
}

func TestCompose_ZOrder(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 10)+"\n", 5)

	out, placements := Compose(bg, 10, 5,
		Item{ID: "top", Content: "TT\nTT", Z: 2, X: 1, Y: 1},
		Item{ID: "bottom", Content: "BBB\nBBB\nBBB", Z: 1, X: 0, Y: 0},
	)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "BBB.......", lines[0])
	assert.Equal(t, "BTT.......", lines[1])
	assert.Equal(t, "BTT.......", lines[2])
	assert.Equal(t, "..........", lines[3])

	require.Len(t, placements, 2)
	assert.Equal(t, "bottom", placements[0].ID)
	assert.Equal(t, "top", placements[1].ID)
	assert.Equal(t, Rect{X: 1, Y: 1, W: 2, H: 2}, placements[1].Rect)
}

func TestCompose_CenteredAndClamped(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 10)+"\n", 5)

	_, placements := Compose(bg, 10, 5,
		Item{ID: "c", Content: "XXXX\nXXXX", Centered: true},
		Item{ID: "far", Content: "YY", X: 50, Y: 50, Z: 1},
	)

	require.Len(t, placements, 2)
	assert.Equal(t, Rect{X: 3, Y: 1, W: 4, H: 2}, placements[0].Rect)
	assert.Equal(t, Rect{X: 8, Y: 4, W: 2, H: 1}, placements[1].Rect)
}

func TestCompose_SkipsEmptyItems(t *testing.T) {
	_, placements := Compose("", 5, 2, Item{ID: "empty"})
	assert.Empty(t, placements)
}

func TestCompose_ZeroSize(t *testing.T) {
	out, placements := Compose("abc", 0, 0)
	assert.Empty(t, out)
	assert.Nil(t, placements)
}

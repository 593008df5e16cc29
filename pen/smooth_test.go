// SPDX-License-Identifier: Unlicense OR MIT

package pen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/burhanyldz/vector-pen/f32"
	"github.com/burhanyldz/vector-pen/svg"
)

func TestSmoothEndpoints(t *testing.T) {
	for _, tc := range []struct {
		label  string
		points []f32.Point
	}{
		{"two points", []f32.Point{{X: 10, Y: 10}, {X: 20, Y: 30}}},
		{"three points", []f32.Point{{X: 10, Y: 10}, {X: 15, Y: 10}, {X: 15, Y: 10}}},
		{"zigzag", []f32.Point{{X: 0, Y: 0}, {X: 4, Y: 8}, {X: 9, Y: 1}, {X: 16, Y: 7}, {X: 25, Y: 2}}},
	} {
		t.Run(tc.label, func(t *testing.T) {
			cmds, err := svg.ParsePath(Smooth(tc.points))
			require.NoError(t, err)
			require.NotEmpty(t, cmds)
			first, last := cmds[0], cmds[len(cmds)-1]
			require.Equal(t, byte('M'), first.Op)
			require.Equal(t, tc.points[0], first.To)
			require.Equal(t, tc.points[len(tc.points)-1], last.To)
		})
	}
}

func TestSmoothShape(t *testing.T) {
	// Interior points become control points of quadratic curves
	// ending at the midpoint towards the next point.
	got := Smooth([]f32.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})
	require.Equal(t, "M 0 0 Q 10 0 10 5 Q 10 10 5 10 L 0 10", got)
}

func TestSmoothShort(t *testing.T) {
	require.Equal(t, "", Smooth(nil))
	require.Equal(t, "M 3 4", Smooth([]f32.Point{{X: 3, Y: 4}}))
	require.Equal(t, "M 3 4 L 5 6", Smooth([]f32.Point{{X: 3, Y: 4}, {X: 5, Y: 6}}))
}

func TestSmoothDeterministic(t *testing.T) {
	points := []f32.Point{{X: 1, Y: 2}, {X: 7, Y: 3}, {X: 9, Y: 9}}
	require.Equal(t, Smooth(points), Smooth(points))
}

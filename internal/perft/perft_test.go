package perft

import (
	"testing"

	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  int64
	}{
		{depth: 0, want: 1},
		{depth: 1, want: 20},
		{depth: 2, want: 400},
		{depth: 3, want: 8902},
	}
	for _, tt := range tests {
		if tt.depth >= 3 && testing.Short() {
			continue
		}
		assert.Equal(t, tt.want, Count(model.NewGameState(), tt.depth), "depth %d", tt.depth)
	}
}

func TestCountLeavesStateUntouched(t *testing.T) {
	state := model.NewGameState()
	before := state.FEN()
	Count(state, 2)
	assert.Equal(t, before, state.FEN())
}

func TestPromotionChoicesAreSeparateMoves(t *testing.T) {
	state, err := model.LoadFEN("k7/4P3/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	// three king steps plus four promotion choices
	assert.Equal(t, int64(7), Count(state, 1))

	calls := 0
	results := Divide(state, 1, func() { calls++ })
	require.Len(t, results, 7)
	assert.Equal(t, RootMoves(state), calls)

	got := map[string]int64{}
	for _, r := range results {
		got[r.Move] = r.Nodes
	}
	for _, m := range []string{"e7e8q", "e7e8r", "e7e8b", "e7e8n", "a1a2", "a1b1", "a1b2"} {
		assert.Contains(t, got, m)
		assert.Equal(t, int64(1), got[m], m)
	}
}

func TestCheckmatedSideHasNoMoves(t *testing.T) {
	state, err := model.LoadFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 0 1")
	require.NoError(t, err)
	require.True(t, state.IsCheckmate(model.PlayerColorWhite))

	assert.Equal(t, int64(0), Count(state, 1))
	assert.Empty(t, Divide(state, 1, nil))
	assert.Equal(t, 0, RootMoves(state))
}

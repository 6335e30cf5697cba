// Package perft counts the nodes of the move tree reachable under the
// engine's rules. Counts are a regression check for move generation and the
// check gate: any change in them is a change in what the engine allows.
package perft

import (
	"fmt"

	"github.com/benbeisheim/hotseat-chess/internal/model"
)

var (
	promotionChoices = []string{"queen", "rook", "bishop", "knight"}
	promotionLetters = map[string]string{"queen": "q", "rook": "r", "bishop": "b", "knight": "n"}
)

type Result struct {
	Move  string
	Nodes int64
}

type move struct {
	from, to  model.Square
	promotion string
}

func (m move) String() string {
	return fmt.Sprintf("%s%s%s", m.from, m.to, promotionLetters[m.promotion])
}

// moves lists every allowed move for the side to move, one per promotion
// choice on the last rank. A checkmated side has none.
func moves(state *model.GameState) []move {
	if state.IsCheckmate(state.CurrentPlayer) {
		return nil
	}
	out := []move{}
	for _, piece := range state.Board.Pieces(state.CurrentPlayer) {
		for _, to := range state.AllowedMoves(piece) {
			if model.NeedsPromotion(piece, to) {
				for _, choice := range promotionChoices {
					out = append(out, move{from: piece.Position, to: to, promotion: choice})
				}
				continue
			}
			out = append(out, move{from: piece.Position, to: to})
		}
	}
	return out
}

func play(state *model.GameState, m move) *model.GameState {
	child := state.Clone()
	child.ApplyMove(child.PieceAt(m.from), m.to, m.promotion)
	return child
}

// Count returns the number of leaf positions depth plies below state.
func Count(state *model.GameState, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	candidates := moves(state)
	if depth == 1 {
		return int64(len(candidates))
	}
	var nodes int64
	for _, m := range candidates {
		nodes += Count(play(state, m), depth-1)
	}
	return nodes
}

// Divide splits Count by root move. done, if non-nil, is called after each
// root move is counted.
func Divide(state *model.GameState, depth int, done func()) []Result {
	results := []Result{}
	if depth <= 0 {
		return results
	}
	for _, m := range moves(state) {
		results = append(results, Result{Move: m.String(), Nodes: Count(play(state, m), depth-1)})
		if done != nil {
			done()
		}
	}
	return results
}

// RootMoves is the number of results Divide will produce.
func RootMoves(state *model.GameState) int {
	return len(moves(state))
}

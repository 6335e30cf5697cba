package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/hotseat-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Observer is a live connection that receives state pushes.
type Observer interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// LockedObserver serialises writes to a connection. Websocket connections
// allow a single concurrent writer.
type LockedObserver struct {
	mu   sync.Mutex
	conn Observer
}

func NewLockedObserver(conn Observer) *LockedObserver {
	if locked, ok := conn.(*LockedObserver); ok {
		return locked
	}
	return &LockedObserver{conn: conn}
}

func (o *LockedObserver) WriteJSON(v interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteJSON(v)
}

func (o *LockedObserver) WriteMessage(messageType int, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.WriteMessage(messageType, data)
}

func (o *LockedObserver) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.conn.Close()
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Observer // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Observer),
	}
}

// Game is one hot-seat session: both colours are played from the device that
// created it. It serialises access to the engine state and fans updates out
// to observers.
type Game struct {
	ID          string
	Owner       string
	mu          sync.Mutex
	state       *GameState
	status      GameStatus
	connections *GameConnections

	// version counts state changes; broadcasts older than sent are dropped.
	version     uint64
	broadcastMu sync.Mutex
	sent        uint64
}

type GameStatus struct {
	Sound       string       `json:"sound"`
	IsCheck     bool         `json:"isCheck"`
	IsCheckmate bool         `json:"isCheckmate"`
	Resolve     *string      `json:"resolve"`
	MoveHistory []Move       `json:"moveHistory"`
	LastMove    *SimpleMove  `json:"lastMove"`
	Captured    []Piece      `json:"capturedPieces"`
	Winner      *PlayerColor `json:"winner"`
}

// GameView is the client-facing snapshot of a game.
type GameView struct {
	ID     string      `json:"id"`
	Board  BoardState  `json:"boardState"`
	ToMove PlayerColor `json:"toMove"`
	Scores Scores      `json:"scores"`
	FEN    string      `json:"fen"`
	Strict bool        `json:"strict"`
	GameStatus
}

func NewGame(id, owner string, state *GameState) *Game {
	g := &Game{
		ID:          id,
		Owner:       owner,
		state:       state,
		connections: NewGameConnections(),
		status: GameStatus{
			MoveHistory: make([]Move, 0),
			Captured:    make([]Piece, 0),
		},
	}
	g.updateStatus()
	return g
}

func (g *Game) IsOwner(playerID string) bool {
	return playerID != "" && g.Owner == playerID
}

func (g *Game) GetState() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

// view copies the state so the snapshot stays valid after later moves.
func (g *Game) view() GameView {
	board, _ := g.state.Board.clone()
	status := g.status
	status.MoveHistory = append(make([]Move, 0, len(g.status.MoveHistory)), g.status.MoveHistory...)
	status.Captured = append(make([]Piece, 0, len(g.status.Captured)), g.status.Captured...)
	return GameView{
		ID:         g.ID,
		Board:      *board,
		ToMove:     g.state.CurrentPlayer,
		Scores:     g.state.Scores,
		FEN:        g.state.FEN(),
		Strict:     g.state.Strict,
		GameStatus: status,
	}
}

// LegalMoves returns the highlight set for the piece on from.
func (g *Game) LegalMoves(from string) ([]Square, error) {
	sq, ok := ParseSquare(from)
	if !ok {
		return nil, ErrInvalidSquare
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	piece := g.state.PieceAt(sq)
	if piece == nil {
		return nil, ErrNoPiece
	}
	return g.state.LegalMoves(piece), nil
}

func (g *Game) MakeMove(move WSMove) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: move %s-%s promotion=%q", g.ID, move.From, move.To, move.Promotion)

	piece, to, err := g.validateMove(move)
	if err != nil {
		return MoveResult{}, err
	}

	mover := g.state.CurrentPlayer
	ply := g.makePly(piece, to, move.Promotion)
	result := g.state.ApplyMove(piece, to, move.Promotion)
	if !result.Moved {
		return MoveResult{}, ErrIllegalMove
	}
	if result.Captured != nil {
		g.status.Captured = append(g.status.Captured, *result.Captured)
	}
	g.status.MoveHistory = appendPly(g.status.MoveHistory, mover, ply)
	g.status.LastMove = &SimpleMove{From: ply.From, To: to}
	g.status.Sound = "move"
	if result.Captured != nil {
		g.status.Sound = "capture"
	}
	g.updateStatus()
	if g.status.IsCheck {
		g.status.Sound = "check"
	}
	if g.status.Resolve != nil {
		log.Infof("game %s: %s, %s wins", g.ID, *g.status.Resolve, mover)
	}

	g.version++
	go g.broadcastState(g.view(), g.version)
	return result, nil
}

func (g *Game) validateMove(move WSMove) (*Piece, Square, error) {
	if g.status.Resolve != nil {
		return nil, Square{}, ErrGameOver
	}
	from, ok := ParseSquare(move.From)
	if !ok {
		return nil, Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, move.From)
	}
	to, ok := ParseSquare(move.To)
	if !ok {
		return nil, Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, move.To)
	}
	piece := g.state.PieceAt(from)
	if piece == nil {
		return nil, Square{}, ErrNoPiece
	}
	if piece.Color != g.state.CurrentPlayer {
		return nil, Square{}, ErrNotYourTurn
	}
	if !g.state.IsLegalMove(piece, to) {
		return nil, Square{}, ErrIllegalMove
	}
	if !g.state.IsMoveAllowed(piece, to) {
		return nil, Square{}, ErrMoveNotAllowed
	}
	return piece, to, nil
}

// updateStatus recomputes the check flags for the side now to move and
// resolves the game on checkmate or a captured king.
func (g *Game) updateStatus() {
	toMove := g.state.CurrentPlayer
	if g.state.Board.King(toMove) == nil {
		result := "king captured"
		winner := toMove.Opponent()
		g.status.IsCheck = false
		g.status.IsCheckmate = false
		g.status.Resolve = &result
		g.status.Winner = &winner
		return
	}
	g.status.IsCheck = g.state.IsInCheck(toMove)
	g.status.IsCheckmate = g.status.IsCheck && g.state.IsCheckmate(toMove)
	if g.status.IsCheckmate {
		result := "checkmate"
		winner := toMove.Opponent()
		g.status.Resolve = &result
		g.status.Winner = &winner
	}
}

func (g *Game) makePly(piece *Piece, to Square, promotion string) Ply {
	moved := *piece
	ply := Ply{
		Piece:    &moved,
		From:     piece.Position,
		To:       to,
		Notation: g.getNotation(piece, to),
	}
	if captured := g.state.PieceAt(to); captured != nil {
		victim := *captured
		ply.CapturedPiece = &victim
	}
	if NeedsPromotion(piece, to) {
		ply.Promotion = ParsePromotion(promotion)
		ply.Notation += "=" + ply.Promotion.getPieceNotation()
	}
	return ply
}

func (g *Game) getNotation(piece *Piece, to Square) string {
	from := piece.Position
	pieceNotationPrefix := piece.Type.getPieceNotation()
	pieceNotationCapture := ""
	if g.state.PieceAt(to) != nil {
		pieceNotationCapture = "x"
	}
	pawnFileSpecifier := ""
	if piece.Type == Pawn && from.X != to.X {
		pawnFileSpecifier = from.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, to.getSquareNotation())
}

func (g *Game) RegisterConnection(playerID string, conn Observer) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		if err := conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		); err != nil {
			log.Debugf("game %s: close frame to duplicate connection of %s: %v", g.ID, playerID, err)
		}
		if err := conn.Close(); err != nil {
			log.Debugf("game %s: closing duplicate connection of %s: %v", g.ID, playerID, err)
		}
		return ErrAlreadyConnected
	}
	g.connections.connections[playerID] = NewLockedObserver(conn)
	g.connections.mu.Unlock()
	log.Infof("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	view, version := g.view(), g.version
	g.mu.Unlock()
	go g.broadcastState(view, version)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Infof("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Observers returns the number of registered connections.
func (g *Game) Observers() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

// broadcastState pushes view to every observer. Broadcasts run one at a time
// per game, and a view older than one already sent is dropped.
func (g *Game) broadcastState(view GameView, version uint64) {
	g.broadcastMu.Lock()
	defer g.broadcastMu.Unlock()
	if version < g.sent {
		log.Debugf("game %s: dropping stale state %d", g.ID, version)
		return
	}
	g.sent = version

	payload, err := json.Marshal(view)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	activeConnections := make(map[string]Observer, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID)
		}
	}
}

package model

import (
	"fmt"
	"log"
	"sync"

	"github.com/NavyAnt24/Chess/internal/engine"
	"github.com/NavyAnt24/Chess/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrConnectionExists = errors.New("connection already exists")
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections observing a specific game
type GameConnections struct {
	connections map[string]Conn // clientID -> connection
	mu          sync.Mutex
}

// Game owns one live board and the session state derived from it.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *engine.Board
	state       GameState
	connections *GameConnections
}

type GameState struct {
	Sound          string            `json:"sound"`
	Board          *BoardState       `json:"boardState"`
	ToMove         engine.Color      `json:"toMove"`
	MoveHistory    []Move            `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	IsCheck        bool              `json:"isCheck"`
	Result         engine.GameResult `json:"result"`
	LegalMoves     []engine.Move     `json:"legalMoves"`
	LastMove       *engine.Move      `json:"lastMove"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []engine.PieceView `json:"white"`
	Black []engine.PieceView `json:"black"`
}

func NewGame(id string) *Game {
	return newGame(id, engine.NewGame(), engine.White)
}

// NewGameFromPosition starts a game from an arbitrary set-up. The position
// must satisfy every board invariant.
func NewGameFromPosition(id string, pieces []engine.Piece, toMove engine.Color) (*Game, error) {
	if !toMove.Valid() {
		return nil, errors.Wrapf(ErrInvalidPosition, "side to move %q", toMove)
	}
	board, err := engine.FromPieces(pieces)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	if err := board.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	return newGame(id, board, toMove), nil
}

func newGame(id string, board *engine.Board, toMove engine.Color) *Game {
	g := &Game{
		ID:          id,
		board:       board,
		connections: NewGameConnections(),
		state: GameState{
			ToMove:      toMove,
			MoveHistory: make([]Move, 0),
			CapturedPieces: CapturedPieces{
				White: make([]engine.PieceView, 0),
				Black: make([]engine.PieceView, 0),
			},
		},
	}
	g.refresh()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// refresh recomputes everything derived from the board for the side to move.
func (g *Game) refresh() {
	g.state.Board = newBoardState(g.board)
	g.state.Result = g.board.Evaluate(g.state.ToMove)
	g.state.IsCheck = g.state.Result.Status == engine.StatusCheck || g.state.Result.Status == engine.StatusCheckmate
	g.state.LegalMoves = g.board.LegalMoves(g.state.ToMove)
	if g.state.LegalMoves == nil {
		g.state.LegalMoves = make([]engine.Move, 0)
	}
}

// GetState returns a copy of the state that later moves will not modify.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshotState()
}

func (g *Game) snapshotState() GameState {
	state := g.state
	state.MoveHistory = make([]Move, len(g.state.MoveHistory))
	for i, m := range g.state.MoveHistory {
		state.MoveHistory[i] = Move{WhitePly: clonePly(m.WhitePly), BlackPly: clonePly(m.BlackPly)}
	}
	state.CapturedPieces = CapturedPieces{
		White: slices.Clone(g.state.CapturedPieces.White),
		Black: slices.Clone(g.state.CapturedPieces.Black),
	}
	state.LegalMoves = slices.Clone(g.state.LegalMoves)
	return state
}

func clonePly(p *Ply) *Ply {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// LegalMovesFrom lists the legal moves of the piece on sq, provided it
// belongs to the side to move.
func (g *Game) LegalMovesFrom(sq engine.Square) []engine.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.board.PieceAt(sq)
	if p == nil || p.Color != g.state.ToMove || g.state.Result.Over() {
		return make([]engine.Move, 0)
	}
	moves := g.board.LegalMovesFrom(sq)
	if moves == nil {
		moves = make([]engine.Move, 0)
	}
	return moves
}

func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	if err := g.checkAndExecute(move); err != nil {
		g.mu.Unlock()
		return err
	}
	g.publishLocked()
	return nil
}

func (g *Game) checkAndExecute(move WSMove) error {
	if g.state.Result.Over() {
		return errors.Wrapf(ErrGameOver, "%s", g.state.Result.Status)
	}
	if p := g.board.PieceAt(move.From); p != nil && p.Color != g.state.ToMove {
		return errors.Wrapf(ErrNotYourTurn, "%s to move", g.state.ToMove)
	}
	return g.executeMove(move)
}

func (g *Game) executeMove(move WSMove) error {
	mover := g.board.PieceAt(move.From)
	var ply Ply
	if mover != nil {
		ply = Ply{Piece: mover.View(), From: move.From, To: move.To}
	}

	var choose engine.PromotionChooser
	if move.Promotion != "" {
		choose = engine.PromoteTo(move.Promotion)
	}
	captured, err := g.board.Move(move.From, move.To, choose)
	if err != nil {
		return err
	}

	g.state.Sound = "move"
	if captured != nil {
		view := captured.View()
		ply.CapturedPiece = &view
		switch g.state.ToMove {
		case engine.White:
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, view)
		case engine.Black:
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, view)
		}
		g.state.Sound = "capture"
	}
	if landed := g.board.PieceAt(move.To); landed.Type != mover.Type {
		ply.Promotion = landed.Type
	}
	g.recordPly(ply)

	g.state.LastMove = &engine.Move{From: move.From, To: move.To}
	g.state.ToMove = g.state.ToMove.Opponent()
	g.refresh()
	if g.state.IsCheck {
		g.state.Sound = "check"
	}
	return nil
}

func (g *Game) recordPly(ply Ply) {
	history := g.state.MoveHistory
	if g.state.ToMove == engine.White || len(history) == 0 || history[len(history)-1].BlackPly != nil {
		entry := Move{}
		if g.state.ToMove == engine.White {
			entry.WhitePly = &ply
		} else {
			entry.BlackPly = &ply
		}
		g.state.MoveHistory = append(history, entry)
		return
	}
	history[len(history)-1].BlackPly = &ply
}

// RegisterConnection adds conn as the observer for clientID and sends every
// observer the current state. A second connection for the same client is
// closed and rejected with ErrConnectionExists; the first one stays.
func (g *Game) RegisterConnection(clientID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[clientID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return errors.Wrapf(ErrConnectionExists, "client %s", clientID)
	}
	g.connections.connections[clientID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for client %s", g.ID, clientID)

	g.mu.Lock()
	g.publishLocked()
	return nil
}

// UnregisterConnection removes conn. It is a no-op when clientID is now
// served by a different connection.
func (g *Game) UnregisterConnection(clientID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	current, exists := g.connections.connections[clientID]
	if !exists {
		return
	}
	if current != conn {
		log.Printf("game %s: ignoring unregister for old connection of client %s", g.ID, clientID)
		return
	}
	log.Printf("game %s: unregistering connection for client %s", g.ID, clientID)
	delete(g.connections.connections, clientID)
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// publishLocked must be called with g.mu held and releases it. The
// connections lock is taken before g.mu is released, so observers receive
// states in the order the moves were made.
func (g *Game) publishLocked() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, g.snapshotState())
	g.connections.mu.Lock()
	g.mu.Unlock()
	defer g.connections.mu.Unlock()

	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	g.broadcastLocked(msg)
}

// broadcastLocked writes msg to every observer. The caller holds the
// connections lock because a websocket connection allows one writer at a time.
func (g *Game) broadcastLocked(msg ws.Message) {
	for clientID, conn := range maps.Clone(g.connections.connections) {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: failed to send state to client %s: %v", g.ID, clientID, err)
			delete(g.connections.connections, clientID)
		}
	}
}

// Notify writes msg to a single observer.
func (g *Game) Notify(clientID string, msg ws.Message) error {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	conn, exists := g.connections.connections[clientID]
	if !exists {
		return errors.Errorf("client %s not connected to game %s", clientID, g.ID)
	}
	return conn.WriteJSON(msg)
}

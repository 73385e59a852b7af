package service

import (
	"log"
	"sync"

	"github.com/NavyAnt24/Chess/internal/engine"
	"github.com/NavyAnt24/Chess/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	return gm.addGame(model.NewGame(gameID))
}

func (gm *GameManager) CreateGameFromPosition(gameID string, pieces []engine.Piece, toMove engine.Color) error {
	game, err := model.NewGameFromPosition(gameID, pieces, toMove)
	if err != nil {
		return err
	}
	return gm.addGame(game)
}

func (gm *GameManager) addGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return errors.Wrap(ErrGameExists, game.ID)
	}
	gm.games[game.ID] = game
	return nil
}

// GetGame only holds the read lock for the lookup; the game serializes its
// own moves.
func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return errors.Wrap(ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := game.MakeMove(move); err != nil {
		log.Printf("game %s: move %v -> %v rejected: %v", gameID, move.From, move.To, err)
		return err
	}
	return nil
}

func (gm *GameManager) LegalMovesFrom(gameID string, from engine.Square) ([]engine.Move, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMovesFrom(from), nil
}

func (gm *GameManager) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(clientID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, clientID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(clientID, conn)
}

package service

import (
	"github.com/NavyAnt24/Chess/internal/engine"
	"github.com/NavyAnt24/Chess/internal/model"
	"github.com/NavyAnt24/Chess/internal/ws"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// Setup describes a custom starting position.
type Setup struct {
	Pieces []engine.Piece `json:"pieces"`
	ToMove engine.Color   `json:"toMove"`
}

func (gs *GameService) CreateGame(setup *Setup) (string, error) {
	gameID := uuid.New().String()

	var err error
	if setup == nil {
		err = gs.gameManager.CreateGame(gameID)
	} else {
		toMove := setup.ToMove
		if toMove == "" {
			toMove = engine.White
		}
		err = gs.gameManager.CreateGameFromPosition(gameID, setup.Pieces, toMove)
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) HandleMove(gameID string, move model.WSMove) (model.GameState, error) {
	if err := gs.gameManager.MakeMove(gameID, move); err != nil {
		return model.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMovesFrom(gameID string, from engine.Square) ([]engine.Move, error) {
	return gs.gameManager.LegalMovesFrom(gameID, from)
}

func (gs *GameService) EndGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, clientID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, clientID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, clientID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, clientID, conn)
}

func (gs *GameService) Notify(gameID string, clientID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Notify(clientID, msg)
}

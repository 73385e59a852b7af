package controller

import (
	"log"

	"github.com/NavyAnt24/Chess/internal/engine"
	"github.com/NavyAnt24/Chess/internal/model"
	"github.com/NavyAnt24/Chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidPosition):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotYourTurn), errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, engine.ErrNoPieceAtSource),
		errors.Is(err, engine.ErrOwnPieceCapture),
		errors.Is(err, engine.ErrIllegalGeometry),
		errors.Is(err, engine.ErrBlocked),
		errors.Is(err, engine.ErrLeavesKingInCheck),
		errors.Is(err, engine.ErrInvalidPromotion),
		errors.Is(err, engine.ErrOffBoard):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var setup *service.Setup
	if len(c.Body()) > 0 {
		setup = &service.Setup{}
		if err := c.BodyParser(setup); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed setup: " + err.Error(),
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(setup)
	if err != nil {
		return errorResponse(c, err)
	}
	log.Printf("created game %s", gameID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := engine.Sq(c.QueryInt("rank", -1), c.QueryInt("file", -1))
	if !from.OnBoard() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "rank and file must be in [0,7]",
		})
	}

	moves, err := gc.gameService.LegalMovesFrom(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  from,
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed move: " + err.Error(),
		})
	}

	gameState, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) EndGame(c *fiber.Ctx) error {
	if err := gc.gameService.EndGame(c.Params("gameId")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game ended",
	})
}

package controller

import (
	"errors"

	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/benbeisheim/hotseat-chess/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// statusFor maps engine and service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidSquare),
		errors.Is(err, model.ErrInvalidPosition):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrMoveNotAllowed),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func replyError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}
	playerID := c.Locals("playerID").(string)

	gameID, err := gc.gameService.CreateGame(playerID, req.FEN)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ListGames(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	return c.JSON(fiber.Map{
		"games": gc.gameService.ListGames(playerID),
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetStatus(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{
		"toMove":      gameState.ToMove,
		"isCheck":     gameState.IsCheck,
		"isCheckmate": gameState.IsCheckmate,
		"resolve":     gameState.Resolve,
		"scores":      gameState.Scores,
	})
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(fiber.Map{
		"fen": gameState.FEN,
	})
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	from := c.Query("from")
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return replyError(c, err)
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
			"error": "malformed move",
		})
	}
	playerID := c.Locals("playerID").(string)

	result, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, move)
	if err != nil {
		return replyError(c, err)
	}
	return c.JSON(result)
}

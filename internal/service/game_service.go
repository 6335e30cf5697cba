package service

import (
	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Options struct {
	// Strict turns on full self-check legality for new games.
	Strict bool
}

type GameService struct {
	gameManager *GameManager
	options     Options
}

func NewGameService(gameManager *GameManager, options Options) *GameService {
	return &GameService{
		gameManager: gameManager,
		options:     options,
	}
}

// CreateGame starts a game owned by playerID, from the standard setup or
// from fen when it is non-empty.
func (gs *GameService) CreateGame(playerID string, fen string) (string, error) {
	state := model.NewGameState()
	if fen != "" {
		loaded, err := model.LoadFEN(fen)
		if err != nil {
			return "", errors.Wrap(err, "failed to create game")
		}
		state = loaded
	}
	state.Strict = gs.options.Strict

	gameID := uuid.New().String()
	if err := gs.gameManager.AddGame(model.NewGame(gameID, playerID, state)); err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) ListGames(playerID string) []string {
	return gs.gameManager.GamesOwnedBy(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) LegalMoves(gameID string, from string) ([]model.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	moves, err := game.LegalMoves(from)
	if err != nil {
		return nil, errors.Wrapf(err, "legal moves for %q", from)
	}
	return moves, nil
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.MoveResult, error) {
	result, err := gs.gameManager.MakeMove(gameID, playerID, move)
	if err != nil {
		log.Debugf("game %s: rejected move %s-%s: %v", gameID, move.From, move.To, err)
		return model.MoveResult{}, errors.Wrapf(err, "move %s-%s", move.From, move.To)
	}
	return result, nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

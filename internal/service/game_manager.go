// service/game_manager.go
package service

import (
	"sort"
	"sync"

	"github.com/benbeisheim/hotseat-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrNotOwner     = errors.New("game belongs to another device")
)

// GameManager is the in-memory registry of running games.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) AddGame(game *model.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[game.ID]; exists {
		return errors.Wrapf(ErrGameExists, "game %s", game.ID)
	}
	gm.games[game.ID] = game
	log.Infof("registered game %s for player %s", game.ID, game.Owner)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrapf(ErrGameNotFound, "game %s", gameID)
	}
	return game, nil
}

// GamesOwnedBy lists the IDs of the games created by playerID, sorted.
func (gm *GameManager) GamesOwnedBy(playerID string) []string {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	ids := []string{}
	for id, game := range gm.games {
		if game.IsOwner(playerID) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) (model.MoveResult, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.MoveResult{}, err
	}
	if !game.IsOwner(playerID) {
		return model.MoveResult{}, errors.Wrapf(ErrNotOwner, "player %s", playerID)
	}
	return game.MakeMove(move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Observer) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

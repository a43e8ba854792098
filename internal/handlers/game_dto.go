package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

// CreateGameDTO holds the optional overrides of the server's default game
// parameters.
type CreateGameDTO struct {
	Size           *int  `schema:"size"`
	MineCount      *int  `schema:"mine_count"`
	FirstClickSafe *bool `schema:"first_click_safe"`
}

func ParseCreateGameDTO(src url.Values) (CreateGameDTO, error) {
	var dto CreateGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto CreateGameDTO) Params(defaults mines.GameParams) mines.GameParams {
	params := defaults
	if dto.Size != nil {
		params.Size = *dto.Size
	}
	if dto.MineCount != nil {
		params.MineCount = *dto.MineCount
	}
	if dto.FirstClickSafe != nil {
		params.FirstClickSafe = *dto.FirstClickSafe
	}
	return params
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePositionDTO(src url.Values) (PositionDTO, error) {
	var dto PositionDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameDTO struct {
	GameID           string       `json:"game_id"`
	Size             int          `json:"size"`
	MineCount        int          `json:"mine_count"`
	FirstClickSafe   bool         `json:"first_click_safe"`
	Status           mines.Status `json:"status"`
	FirstMovePending bool         `json:"first_move_pending"`
	MinesRemaining   int          `json:"mines_remaining"`
	Grid             mines.Grid   `json:"grid"`
}

func NewGameDTO(gameID string, s mines.Snapshot) *GameDTO {
	return &GameDTO{
		GameID:           gameID,
		Size:             s.Params.Size,
		MineCount:        s.Params.MineCount,
		FirstClickSafe:   s.Params.FirstClickSafe,
		Status:           s.Status,
		FirstMovePending: s.FirstMovePending,
		MinesRemaining:   s.MinesRemaining(),
		Grid:             s.View(),
	}
}

type CreatedGameDTO struct {
	Game   *GameDTO `json:"game"`
	Ticket string   `json:"ticket"`
}

type BatchErrorDTO struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

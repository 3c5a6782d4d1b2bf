package handlers

import (
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/okulov/sweeper/internal/mines"
	"github.com/okulov/sweeper/internal/session"
)

type NewGameDTO struct {
	Preset    string `schema:"preset"`
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameParams resolves the request into a difficulty triple and the label
// used for metrics: either a named preset or the custom width/height/mines
// query values.
func (dto NewGameDTO) GameParams() (mines.GameParams, string, error) {
	if dto.Preset != "" {
		params, ok := mines.Preset(dto.Preset)
		if !ok {
			return mines.GameParams{}, "", fmt.Errorf(
				"unknown preset %q", dto.Preset,
			)
		}
		return params, strings.ToLower(dto.Preset), nil
	}
	params := mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	return params, "custom", nil
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	SessionId string     `json:"session_id"`
	Grid      mines.Grid `json:"grid"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	MineCount int        `json:"mine_count"`
	Status    string     `json:"status"`
	StartedAt int64      `json:"started_at"`
	EndedAt   *int64     `json:"ended_at,omitempty"`
}

// NewGameSessionDTO snapshots a session. The caller holds the session lock.
func NewGameSessionDTO(s *session.Session) *GameSessionDTO {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		SessionId: s.Id,
		Grid:      s.State.Snapshot(),
		Width:     s.State.Width,
		Height:    s.State.Height,
		MineCount: s.State.MineCount,
		Status:    s.State.Status().String(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	}
}

package model

import "errors"

var ErrGameFull = errors.New("game is full")

type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
}

// Seats records which player plays which color.
type Seats struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

// Take seats playerID on the first free color, or returns the color they
// already hold.
func (s *Seats) Take(playerID string) (Color, error) {
	if color, ok := s.ColorOf(playerID); ok {
		return color, nil
	}
	if s.White.ID == "" {
		s.White = Player{ID: playerID, Color: White}
		return White, nil
	}
	if s.Black.ID == "" {
		s.Black = Player{ID: playerID, Color: Black}
		return Black, nil
	}
	return "", ErrGameFull
}

func (s *Seats) ColorOf(playerID string) (Color, bool) {
	if playerID == "" {
		return "", false
	}
	if s.White.ID == playerID {
		return White, true
	}
	if s.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

func (s *Seats) Full() bool {
	return s.White.ID != "" && s.Black.ID != ""
}

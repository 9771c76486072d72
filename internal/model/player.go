package model

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID         string      `json:"name"`
	Color      PlayerColor `json:"color"`
	TimeLeft   int         `json:"timeLeft"`
	IsComputer bool        `json:"isComputer"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

func (c PlayerColor) Valid() bool {
	return c == PlayerColorWhite || c == PlayerColorBlack
}

// ComputerPlayerID marks the seat taken by the built-in opponent.
const ComputerPlayerID = "computer"

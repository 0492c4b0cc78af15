package entity

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Spectator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Point - a board coordinate, used as the target of cell-directed skills.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

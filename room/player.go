package room

// Player is a room member. Identity is the opaque per-session ID handed
// out by the gateway. Score and HasGuessed are owned by the game state
// machine but live here because the room owns the member list.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Score      int    `json:"score"`
	HasGuessed bool   `json:"hasGuessed"`
}

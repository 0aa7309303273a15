package session

// Broadcaster pushes events to every client watching a game.
type Broadcaster interface {
	Broadcast(gameID string, action string, data interface{})
}

// Event names sent through the Broadcaster.
const (
	EventLobbyUpdated = "lobby_updated"
	EventGameStarted  = "game_started"
	EventGameState    = "game_state"
	EventPlayerMoved  = "player_moved"
	EventPlayerLanded = "player_landed"
	EventPlayerStatus = "player_status"
	EventDiceResult   = "dice_result"
	EventLottery      = "lottery"
)

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, string, interface{}) {}

package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mankomania-server/internal/game"
	"mankomania-server/internal/lottery"
)

// Controller runs one started game. Every exported method takes the
// controller lock, so moves and lottery payments of a session never interleave.
type Controller struct {
	mu      sync.Mutex
	id      string
	board   *game.Board
	players []*game.Player
	lottery *lottery.Service
	current int
	dice    game.Dice
	out     Broadcaster
	log     *zap.SugaredLogger
}

func NewController(id string, board *game.Board, players []*game.Player, lot *lottery.Service, out Broadcaster, log *zap.SugaredLogger) *Controller {
	if lot == nil {
		lot = lottery.NewService(lottery.DefaultRules())
	}
	if out == nil {
		out = nopBroadcaster{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{
		id:      id,
		board:   board,
		players: players,
		lottery: lot,
		dice:    game.TwoDice{},
		out:     out,
		log:     log.With("game", id),
	}
}

func (c *Controller) SetDice(d game.Dice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dice = d
}

func (c *Controller) ID() string { return c.id }

type event struct {
	action string
	data   interface{}
}

func (c *Controller) emit(events ...event) {
	for _, e := range events {
		c.out.Broadcast(c.id, e.action, e.data)
	}
}

// host is the game.Host handed to cell actions. It is only used while the
// controller lock is held and must not lock again.
type host struct{ c *Controller }

func (h host) GameID() string             { return h.c.id }
func (h host) Logger() *zap.SugaredLogger { return h.c.log }
func (h host) Player(name string) (*game.Player, bool) {
	p := h.c.find(name)
	return p, p != nil
}

func (c *Controller) find(name string) *game.Player {
	for _, p := range c.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// StartGame hands the first turn to players[first] and pushes the full state.
func (c *Controller) StartGame(first int) {
	c.setFirst(first)
	c.broadcastState()
}

func (c *Controller) setFirst(first int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.players); n > 0 {
		c.current = ((first % n) + n) % n
	}
	for i, p := range c.players {
		p.IsTurn = i == c.current
	}
}

func (c *Controller) broadcastState() {
	state := c.Snapshot()
	c.log.Infow("game state pushed", "current", state.CurrentPlayer)
	c.emit(event{EventGameState, state})
}

// ComputeMoveResult moves the player and lands them on their final cell.
// Unknown players yield ErrPlayerNotFound and leave every player untouched.
func (c *Controller) ComputeMoveResult(playerID string, steps int) (MoveResult, error) {
	c.mu.Lock()
	p := c.find(playerID)
	if p == nil {
		c.mu.Unlock()
		return MoveResult{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	res, err := c.computeMove(p, steps)
	var status PlayerState
	if err == nil {
		status = stateOf(p)
	}
	c.mu.Unlock()

	if err != nil {
		return MoveResult{}, err
	}
	c.emit(
		event{EventPlayerLanded, landed(playerID, res.NewPosition)},
		event{EventPlayerStatus, status},
	)
	return res, nil
}

// MovePlayer is ComputeMoveResult followed by passing the turn on.
func (c *Controller) MovePlayer(playerID string, steps int) (MoveResult, error) {
	c.mu.Lock()
	p := c.find(playerID)
	if p == nil {
		c.mu.Unlock()
		return MoveResult{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	res, err := c.computeMove(p, steps)
	if err != nil {
		c.mu.Unlock()
		return MoveResult{}, err
	}
	c.advanceTurn()
	status := stateOf(p)
	state := c.snapshot()
	c.mu.Unlock()

	c.emit(
		event{EventPlayerMoved, PlayerMoved{PlayerID: playerID, MoveResult: res}},
		event{EventPlayerLanded, landed(playerID, res.NewPosition)},
		event{EventPlayerStatus, status},
		event{EventGameState, state},
	)
	return res, nil
}

// RollDice rolls for the player, records the roll, moves them by its sum and
// passes the turn on.
func (c *Controller) RollDice(playerID string) (DiceMoveResult, error) {
	c.mu.Lock()
	p := c.find(playerID)
	if p == nil {
		c.mu.Unlock()
		return DiceMoveResult{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	roll := c.dice.Roll()
	p.RecordDiceRoll(roll)
	res, err := c.computeMove(p, roll.Sum())
	if err != nil {
		c.mu.Unlock()
		return DiceMoveResult{}, err
	}
	c.advanceTurn()
	status := stateOf(p)
	state := c.snapshot()
	c.mu.Unlock()

	out := DiceMoveResult{
		PlayerID:         playerID,
		Die1:             roll.Die1,
		Die2:             roll.Die2,
		Sum:              roll.Sum(),
		FieldIndex:       res.NewPosition,
		FieldType:        res.FieldType,
		FieldDescription: res.FieldDescription,
		PlayersOnField:   res.PlayersOnField,
	}
	c.emit(
		event{EventDiceResult, out},
		event{EventPlayerLanded, landed(playerID, res.NewPosition)},
		event{EventPlayerStatus, status},
		event{EventGameState, state},
	)
	return out, nil
}

// computeMove requires c.mu. Direct landings and branch relocations both end
// with exactly one LandOn on the final cell.
func (c *Controller) computeMove(p *game.Player, steps int) (MoveResult, error) {
	old := p.Position
	branched, err := p.Move(steps, c.board)
	if err != nil {
		return MoveResult{}, err
	}

	cell := c.board.Cell(p.Position)
	cell.LandOn(p, host{c})

	res := MoveResult{
		OldPosition:      old,
		NewPosition:      p.Position,
		FieldType:        noActionType,
		FieldDescription: noActionDescription,
		PlayersOnField:   []string{},
	}
	if cell.Action != nil {
		res.FieldType = cell.Action.Kind()
		res.FieldDescription = cell.Action.Description()
	}
	for _, other := range c.players {
		if other != p && other.Position == p.Position {
			res.PlayersOnField = append(res.PlayersOnField, other.Name)
		}
	}

	c.log.Debugw("player moved", "player", p.Name, "from", old, "to", p.Position, "steps", steps, "branched", branched)
	return res, nil
}

func (c *Controller) advanceTurn() {
	if len(c.players) == 0 {
		return
	}
	c.players[c.current].IsTurn = false
	c.current = (c.current + 1) % len(c.players)
	c.players[c.current].IsTurn = true
}

func landed(player string, position int) map[string]interface{} {
	return map[string]interface{}{"player": player, "position": position}
}

// snapshot requires c.mu.
func (c *Controller) snapshot() GameState {
	state := GameState{
		GameID:      c.id,
		Players:     make([]PlayerState, 0, len(c.players)),
		Board:       c.board.Cells(),
		LotteryPool: c.lottery.PoolAmount(),
	}
	for _, p := range c.players {
		state.Players = append(state.Players, stateOf(p))
	}
	if len(c.players) > 0 {
		state.CurrentPlayer = c.players[c.current].Name
	}
	return state
}

func (c *Controller) Snapshot() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) Player(name string) (PlayerState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.find(name)
	if p == nil {
		return PlayerState{}, false
	}
	return stateOf(p), true
}

func (c *Controller) CurrentPlayer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.players) == 0 {
		return ""
	}
	return c.players[c.current].Name
}

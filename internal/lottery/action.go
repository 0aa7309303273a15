package lottery

import "mankomania-server/internal/game"

// LandingAction runs ProcessLanding for whoever lands on a lottery cell.
type LandingAction struct {
	svc *Service
}

func NewLandingAction(svc *Service) *LandingAction {
	return &LandingAction{svc: svc}
}

func (a *LandingAction) Kind() string { return "Lottery" }

func (a *LandingAction) Description() string {
	return "Lottery: collect the pool, or pay the stake into an empty one"
}

func (a *LandingAction) Execute(p *game.Player, h game.Host) error {
	res := a.svc.ProcessLanding(p)
	h.Logger().Infow("lottery landing",
		"game", h.GameID(),
		"player", p.Name,
		"success", res.Success,
		"message", res.Message,
		"pool", a.svc.PoolAmount(),
	)
	return nil
}

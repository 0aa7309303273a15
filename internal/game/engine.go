package game

import "errors"

var ErrNegativeSteps = errors.New("steps must be non-negative")

// Move advances the player by steps around the board. Landing on a branch
// cell relocates the player to the first branch option and reports true;
// a branch cell without options leaves the player in place but still reports
// true. Only the player's position changes.
func (p *Player) Move(steps int, b *Board) (bool, error) {
	if steps < 0 {
		return false, ErrNegativeSteps
	}

	// reduce first so huge step counts cannot overflow the sum
	cell := b.Cell(p.Position%b.Size() + steps%b.Size())
	p.Position = cell.Index
	if !cell.HasBranch {
		return false, nil
	}
	p.chooseBranch(cell.BranchOptions, b)
	return true, nil
}

func (p *Player) chooseBranch(options []int, b *Board) {
	if len(options) == 0 {
		return
	}
	p.Position = b.Cell(options[0]).Index
}

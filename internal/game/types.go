package game

import "fmt"

type CellState int

const (
	CellFree CellState = iota
	CellOccupied
)

func (s CellState) String() string {
	if s == CellOccupied {
		return "OCCUPIED"
	}
	return "FREE"
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(b []byte) error {
	switch string(b) {
	case "FREE":
		*s = CellFree
	case "OCCUPIED":
		*s = CellOccupied
	default:
		return fmt.Errorf("unknown cell state %q", b)
	}
	return nil
}

// CellType is informational only; behavior hangs off the attached action.
type CellType string

const (
	CellNormal   CellType = "NORMAL"
	CellStart    CellType = "START"
	CellBranch   CellType = "BRANCH"
	CellLottery  CellType = "LOTTERY"
	CellMinigame CellType = "MINIGAME"
)

type Cell struct {
	Index         int        `json:"index"`
	State         CellState  `json:"state"`
	HasBranch     bool       `json:"hasBranch"`
	BranchOptions []int      `json:"branchOptions"`
	Type          CellType   `json:"type"`
	Action        CellAction `json:"-"`
}

// Board is a fixed ring of cells. Only cell occupancy changes after creation.
type Board struct {
	cells []*Cell
}

// Layout tells NewBoard which cells branch and which carry actions.
type Layout struct {
	IsBranch func(index int) bool
	// BranchOffset defaults to DefaultBranchOffset when zero.
	BranchOffset int
	// Action returns the action for a cell, or nil.
	Action func(index int) (CellAction, CellType)
	Starts []int
}

const DefaultBranchOffset = 5

func NewBoard(size int, layout Layout) *Board {
	if size <= 0 {
		size = 1
	}
	if layout.IsBranch == nil {
		layout.IsBranch = func(int) bool { return false }
	}
	if layout.BranchOffset == 0 {
		layout.BranchOffset = DefaultBranchOffset
	}

	starts := make(map[int]bool, len(layout.Starts))
	for _, s := range layout.Starts {
		starts[s] = true
	}

	cells := make([]*Cell, size)
	for i := range cells {
		c := &Cell{Index: i, State: CellFree, Type: CellNormal, BranchOptions: []int{}}
		if layout.IsBranch(i) {
			c.HasBranch = true
			c.Type = CellBranch
			c.BranchOptions = []int{(i + layout.BranchOffset) % size}
		}
		if layout.Action != nil {
			if action, typ := layout.Action(i); action != nil {
				c.Action = action
				if !c.HasBranch {
					c.Type = typ
				}
			}
		}
		if starts[i] && c.Type == CellNormal {
			c.Type = CellStart
		}
		cells[i] = c
	}
	return &Board{cells: cells}
}

// NewBoardFromCells builds a board from explicit cells; cell indices are
// reassigned to match their position.
func NewBoardFromCells(cells []*Cell) *Board {
	if len(cells) == 0 {
		cells = []*Cell{{}}
	}
	for i, c := range cells {
		c.Index = i
		if c.BranchOptions == nil {
			c.BranchOptions = []int{}
		}
		if c.Type == "" {
			c.Type = CellNormal
		}
	}
	return &Board{cells: cells}
}

func (b *Board) Size() int { return len(b.cells) }

// Cell returns the cell at index, wrapping any integer into [0, Size).
func (b *Board) Cell(index int) *Cell {
	n := len(b.cells)
	return b.cells[((index%n)+n)%n]
}

func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	for i, c := range b.cells {
		out[i] = *c
		out[i].BranchOptions = append(make([]int, 0, len(c.BranchOptions)), c.BranchOptions...)
	}
	return out
}

package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mankomania-server/internal/game"
)

func setup() (*Service, *game.Player) {
	return NewService(DefaultRules()), &game.Player{Name: "TestPlayer", Balance: 100000}
}

func TestGoToFieldPaysFee(t *testing.T) {
	s, p := setup()
	assert.True(t, s.ProcessGoToField(p))
	assert.Equal(t, 95000, p.Balance)
	assert.Equal(t, 5000, s.PoolAmount())
}

func TestPassingLotteryPaysFee(t *testing.T) {
	s, p := setup()
	assert.True(t, s.ProcessPassingLottery(p))
	assert.Equal(t, 95000, p.Balance)
	assert.Equal(t, 5000, s.PoolAmount())
}

func TestPayInRefusesBankruptPlayer(t *testing.T) {
	s, p := setup()
	p.Balance = 0
	assert.False(t, s.ProcessGoToField(p))
	assert.False(t, s.ProcessPassingLottery(p))
	assert.Equal(t, 0, p.Balance)
	assert.Equal(t, 0, s.PoolAmount())
}

func TestPayInInsufficientFunds(t *testing.T) {
	s, p := setup()
	p.Balance = 4999
	assert.False(t, s.ProcessPayIn(p, 5000, "overdraft attempt"))
	assert.Equal(t, 4999, p.Balance)
	assert.Equal(t, 0, s.PoolAmount())
	assert.Empty(t, s.Winners())
}

func TestPayInRejectsNonPositiveAmount(t *testing.T) {
	s, p := setup()
	assert.False(t, s.ProcessPayIn(p, 0, "nothing"))
	assert.False(t, s.ProcessPayIn(p, -10, "refund"))
	assert.Equal(t, 100000, p.Balance)
	assert.Equal(t, 0, s.PoolAmount())
}

func TestPayInToZeroDeclaresWinner(t *testing.T) {
	s, p := setup()
	for i := 1; i <= 20; i++ {
		require.True(t, s.ProcessGoToField(p), "payment %d", i)
		assert.Equal(t, 100000-i*5000, p.Balance)
		if i < 20 {
			require.False(t, s.IsWinner(p), "payment %d", i)
		}
	}
	assert.Equal(t, 0, p.Balance)
	assert.True(t, s.IsWinner(p))
	assert.Equal(t, []string{"TestPlayer"}, s.Winners())
	assert.Equal(t, 100000, s.PoolAmount())

	assert.False(t, s.ProcessGoToField(p))
	assert.False(t, s.ProcessPassingLottery(p))
	res := s.ProcessLanding(p)
	assert.False(t, res.Success)
	assert.Equal(t, "Player has already won", res.Message)
	assert.Equal(t, 0, p.Balance)
	assert.Equal(t, 100000, s.PoolAmount())
}

func TestWinnerStaysWinnerAfterBalanceChanges(t *testing.T) {
	s, p := setup()
	p.Balance = 1000
	s.ProcessLanding(p)
	require.True(t, s.IsWinner(p))

	p.Balance = 500000
	other := &game.Player{Name: "Other", Balance: 100000}
	require.True(t, s.ProcessGoToField(other))

	assert.False(t, s.ProcessGoToField(p))
	res := s.ProcessLanding(p)
	assert.False(t, res.Success)
	assert.Equal(t, 500000, p.Balance)
	assert.Equal(t, 5000, s.PoolAmount())
}

func TestLandingOnNonEmptyPoolPaysOut(t *testing.T) {
	s, p := setup()
	for i := 0; i < 3; i++ {
		s.ProcessGoToField(p)
	}
	require.Equal(t, 15000, s.PoolAmount())

	res := s.ProcessLanding(p)
	assert.True(t, res.Success)
	assert.Equal(t, "Won 15000 from lottery!", res.Message)
	assert.Equal(t, 100000, p.Balance)
	assert.Equal(t, 0, s.PoolAmount())
}

func TestLandingPayoutIgnoresBalance(t *testing.T) {
	s, p := setup()
	require.True(t, s.ProcessGoToField(p))

	poor := &game.Player{Name: "Poor", Balance: 10}
	res := s.ProcessLanding(poor)
	assert.True(t, res.Success)
	assert.Equal(t, 5010, poor.Balance)
	assert.Equal(t, 0, s.PoolAmount())
}

func TestLandingOnEmptyPoolPaysStake(t *testing.T) {
	s, p := setup()
	res := s.ProcessLanding(p)
	assert.True(t, res.Success)
	assert.Equal(t, "Paid 50000", res.Message)
	assert.Equal(t, 50000, p.Balance)
	assert.Equal(t, 50000, s.PoolAmount())
}

func TestLandingWithoutStakeDeclaresWinner(t *testing.T) {
	s, p := setup()
	p.Balance = 1000
	res := s.ProcessLanding(p)
	assert.False(t, res.Success)
	assert.Equal(t, "Player has won the game", res.Message)
	assert.Equal(t, 0, p.Balance)
	assert.Equal(t, 0, s.PoolAmount())
	assert.Contains(t, s.Winners(), "TestPlayer")
}

func TestPaymentWithNotification(t *testing.T) {
	s, p := setup()
	ok, msg := s.ProcessPaymentWithNotification(p, 5000, "test reason")
	assert.True(t, ok)
	assert.Equal(t, "test reason – 5000 added to the lottery", msg)
	assert.Equal(t, 5000, s.PoolAmount())

	p.Balance = 5000
	ok, msg = s.ProcessPaymentWithNotification(p, 5000, "exact payment")
	assert.True(t, ok)
	assert.Equal(t, "exact payment – 5000 added to the lottery", msg)
	assert.True(t, s.IsWinner(p))

	ok, msg = s.ProcessPaymentWithNotification(p, 5000, "again")
	assert.False(t, ok)
	assert.Equal(t, "TestPlayer won", msg)
	assert.Equal(t, 10000, s.PoolAmount())
}

func TestCustomRules(t *testing.T) {
	s := NewService(Rules{Fee: 100, Stake: 1000})
	p := &game.Player{Name: "p", Balance: 1000}
	require.True(t, s.ProcessGoToField(p))
	assert.Equal(t, 900, p.Balance)

	s2 := NewService(Rules{})
	assert.Equal(t, DefaultRules(), s2.Rules())
}

func TestTransactionsRecordFlow(t *testing.T) {
	s, p := setup()
	s.ProcessGoToField(p)
	s.ProcessLanding(p)

	txs := s.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, 5000, txs[0].Amount)
	assert.Equal(t, "minigame entry", txs[0].Reason)
	assert.Equal(t, -5000, txs[1].Amount)
}

type host struct{ log *zap.SugaredLogger }

func (h host) GameID() string                     { return "g" }
func (h host) Logger() *zap.SugaredLogger         { return h.log }
func (h host) Player(string) (*game.Player, bool) { return nil, false }

func TestLandingActionOnCell(t *testing.T) {
	s, p := setup()
	action := NewLandingAction(s)
	b := game.NewBoardFromCells([]*game.Cell{{}, {Action: action}})

	b.Cell(1).LandOn(p, host{log: zaptest.NewLogger(t).Sugar()})
	assert.Equal(t, 50000, p.Balance)
	assert.Equal(t, 50000, s.PoolAmount())
	assert.Equal(t, game.CellOccupied, b.Cell(1).State)
	assert.Equal(t, "Lottery", action.Kind())
}

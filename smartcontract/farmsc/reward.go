package farmsc

import (
	"math/big"

	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/core/common"
)

//rewardPrecision - fixed-point scale of the reward-per-share accumulator.
//Sub-coin remainders stay in the accumulator's fractional bits instead of
//being truncated at coin granularity.
var rewardPrecision = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

//accrue advances AccruedRewardPerShare for the time elapsed since the last
//update, clamped to the farming window. Runs at the start of every
//state-changing entry point, before any account balance is used. No effect
//while nothing is staked.
func (gn *GlobalNode) accrue(now common.Timestamp) {
	if delta := gn.accumulatorDelta(now); delta != nil {
		gn.AccruedRewardPerShare.Add(&gn.AccruedRewardPerShare.Int, delta)
	}
	if now > gn.LastUpdateTime {
		gn.LastUpdateTime = now
	}
}

//accumulatorDelta computes the accumulator increase for the elapsed window
//without mutating anything; shared by accrue and the read-only status
//simulation.
func (gn *GlobalNode) accumulatorDelta(now common.Timestamp) *big.Int {
	if gn.TotalStaked == 0 || gn.Config.RewardRate == 0 {
		return nil
	}
	from := gn.LastUpdateTime
	if from < gn.Config.FarmingStart {
		from = gn.Config.FarmingStart
	}
	to := now
	if gn.Config.FarmingEnd > 0 && to > gn.Config.FarmingEnd {
		to = gn.Config.FarmingEnd
	}
	if to <= from {
		return nil
	}
	delta := new(big.Int).SetUint64(uint64(gn.Config.RewardRate))
	delta.Mul(delta, big.NewInt(int64(to-from)))
	delta.Mul(delta, rewardPrecision)
	delta.Div(delta, new(big.Int).SetUint64(uint64(gn.TotalStaked)))
	return delta
}

//settle moves the reward newly accrued on the account's current staked
//balance into its claimable balance and snapshots the accumulator as the new
//reward debt. Must run before anything mutates Staked, so accrual is always
//computed on the balance in effect over the preceding interval.
func (gn *GlobalNode) settle(un *UserNode) error {
	if un.Staked > 0 {
		pending, err := pendingReward(un.Staked, &gn.AccruedRewardPerShare.Int, &un.RewardDebt.Int)
		if err != nil {
			return err
		}
		if pending > 0 {
			c, err := currency.AddCoin(un.Claimable, pending)
			if err != nil {
				return err
			}
			un.Claimable = c
			tr, err := currency.AddCoin(gn.TotalRewarded, pending)
			if err != nil {
				return err
			}
			gn.TotalRewarded = tr
		}
	}
	un.RewardDebt.Set(&gn.AccruedRewardPerShare.Int)
	return nil
}

//pendingReward - staked * (arps - debt) / precision, truncating toward zero
func pendingReward(staked currency.Coin, arps, debt *big.Int) (currency.Coin, error) {
	diff := new(big.Int).Sub(arps, debt)
	if diff.Sign() <= 0 {
		return 0, nil
	}
	p := new(big.Int).SetUint64(uint64(staked))
	p.Mul(p, diff)
	p.Div(p, rewardPrecision)
	if !p.IsUint64() {
		return 0, common.NewError("reward_overflow", "settled reward does not fit in a coin amount")
	}
	return currency.Coin(p.Uint64()), nil
}

//claimableAt - the read-only accrue/settle simulation backing the status
//view; recomputes against now without writing anything back
func (gn *GlobalNode) claimableAt(un *UserNode, now common.Timestamp) (currency.Coin, error) {
	arps := new(big.Int).Set(&gn.AccruedRewardPerShare.Int)
	if delta := gn.accumulatorDelta(now); delta != nil {
		arps.Add(arps, delta)
	}
	var pending currency.Coin
	if un.Staked > 0 {
		p, err := pendingReward(un.Staked, arps, &un.RewardDebt.Int)
		if err != nil {
			return 0, err
		}
		pending = p
	}
	return currency.AddCoin(un.Claimable, pending)
}

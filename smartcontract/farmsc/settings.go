package farmsc

import (
	"go.uber.org/zap"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/logging"
)

//updateSettings - owner-only adjustment of the mutable farm parameters. The
//accumulator is brought up to date under the old rate before a new rate or
//farming end takes effect, so already elapsed time keeps its original terms.
func (fsc *FarmSmartContract) updateSettings(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	if t.ClientID != gn.Config.OwnerID {
		return "", common.NewError("unauthorized_access", "can only be called by the owner")
	}
	req := &updateSettingsRequest{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed settings request: %v", err)
	}

	gn.accrue(t.CreationDate)

	if req.IsActive != nil {
		gn.IsActive = *req.IsActive
	}
	if req.RewardRate != nil {
		gn.Config.RewardRate = *req.RewardRate
	}
	if req.FarmingEnd != nil {
		if *req.FarmingEnd <= t.CreationDate {
			return "", common.NewError("invalid_request", "farming end must be in the future")
		}
		gn.Config.FarmingEnd = *req.FarmingEnd
	}
	if req.MaxStake != nil {
		gn.Config.MaxStake = *req.MaxStake
	}

	if err := fsc.saveNodes(gn, nil, balances); err != nil {
		return "", err
	}
	logging.Logger.Info("farm settings updated",
		zap.String("owner_id", t.ClientID),
		zap.Bool("is_active", gn.IsActive),
		zap.Uint64("reward_rate", uint64(gn.Config.RewardRate)))
	return string(gn.Encode()), nil
}

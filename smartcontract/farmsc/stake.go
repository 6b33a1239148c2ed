package farmsc

import (
	"go.uber.org/zap"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/logging"
)

//onTokenTransfer - the inbound transfer-and-notify hook the stake token
//contract invokes after moving tokens to the farm. The tokens are already
//held by the farm, so the stake is credited synchronously; any part the farm
//does not accept is reported back in the response and the token contract
//returns it to the sender.
func (fsc *FarmSmartContract) onTokenTransfer(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	if t.ClientID != gn.Config.StakeTokenID {
		return "", common.NewErrorf("invalid_request", "only %v token transfers are accepted", gn.Config.StakeTokenID)
	}
	if gn.closedAt(t.CreationDate) {
		return "", common.NewError("farm_closed", "farm is past its farming end date")
	}

	req := &stakeNotification{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed transfer notification: %v", err)
	}
	if req.Amount == 0 {
		return "", common.NewError("invalid_request", "staked amount must be positive")
	}
	// the notification message selects the operation; plain staking is the
	// only one supported, anything else is rejected rather than ignored
	if req.Msg != "" {
		return "", common.NewErrorf("invalid_request", "unrecognized transfer message %q", req.Msg)
	}
	un, err := fsc.getUserNode(req.SenderID, balances)
	if err != nil {
		return "", err
	}

	gn.accrue(t.CreationDate)
	if err := gn.settle(un); err != nil {
		return "", err
	}

	accepted := req.Amount
	if gn.Config.MaxStake > 0 {
		var remaining currency.Coin
		if gn.TotalStaked < gn.Config.MaxStake {
			remaining = gn.Config.MaxStake - gn.TotalStaked
		}
		if remaining == 0 {
			return "", common.NewError("farm_capacity_exceeded", "farm is at its maximum stake capacity")
		}
		accepted = currency.Min(accepted, remaining)
	}

	staked, err := currency.AddCoin(un.Staked, accepted)
	if err != nil {
		return "", err
	}
	total, err := currency.AddCoin(gn.TotalStaked, accepted)
	if err != nil {
		return "", err
	}
	un.Staked = staked
	gn.TotalStaked = total

	if err := fsc.saveNodes(gn, un, balances); err != nil {
		return "", err
	}

	refund := req.Amount - accepted
	logging.Logger.Info("stake credited",
		zap.String("account_id", req.SenderID),
		zap.Uint64("accepted", uint64(accepted)),
		zap.Uint64("refund", uint64(refund)))
	resp := &stakeResponse{
		AccountID: req.SenderID,
		Accepted:  accepted,
		Refund:    refund,
		Staked:    un.Staked,
	}
	return string(resp.encode()), nil
}

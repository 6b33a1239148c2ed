package farmsc

import (
	"go.uber.org/zap"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/logging"
	"github.com/lau-bin/cheddar/core/util"
)

//resolveTransfer - the host-delivered callback for an outbound transfer call.
//On success the optimistic mutation stands; on failure the debited amount is
//credited back so a failed transfer never loses funds. Either way the pending
//operation is consumed, so a duplicate delivery cannot resolve twice.
//
//The account is settled before any rollback touches its staked balance:
//reward over the in-flight window accrued on the debited balance, and the
//re-credited amount must not retroactively earn for it.
func (fsc *FarmSmartContract) resolveTransfer(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	// callbacks arrive as the contract's own account, never from clients
	if t.ClientID != fsc.ID {
		return "", common.NewError("unauthorized_access", "only the host may resolve transfer calls")
	}
	req := &resolveRequest{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed resolve request: %v", err)
	}

	op := &PendingOperation{}
	err := balances.GetTrieNode(pendingOpKey(req.OpID), op)
	if err == util.ErrValueNotPresent {
		return "", common.NewErrorf("resolve_failed", "unknown or already resolved operation %v", req.OpID)
	}
	if err != nil {
		return "", err
	}
	un, err := fsc.getUserNode(op.AccountID, balances)
	if err != nil {
		return "", err
	}

	outcome := "success"
	if !req.Success {
		outcome = "failure"
		gn.accrue(t.CreationDate)
		if err := gn.settle(un); err != nil {
			return "", err
		}
		switch op.Kind {
		case OpUnstake:
			staked, err := currency.AddCoin(un.Staked, op.Amount)
			if err != nil {
				return "", err
			}
			total, err := currency.AddCoin(gn.TotalStaked, op.Amount)
			if err != nil {
				return "", err
			}
			un.Staked = staked
			gn.TotalStaked = total
		case OpClaimReward:
			claimable, err := currency.AddCoin(un.Claimable, op.Amount)
			if err != nil {
				return "", err
			}
			un.Claimable = claimable
		}
		logging.Logger.Info("transfer call failed, recovering account state",
			zap.String("op_id", op.ID),
			zap.String("kind", op.Kind.String()),
			zap.String("account_id", op.AccountID),
			zap.Uint64("amount", uint64(op.Amount)))
	} else {
		logging.Logger.Info("transfer call resolved",
			zap.String("op_id", op.ID),
			zap.String("kind", op.Kind.String()),
			zap.Uint64("amount", uint64(op.Amount)))
	}

	un.PendingOp = ""
	if _, err := balances.DeleteTrieNode(pendingOpKey(op.ID)); err != nil {
		return "", err
	}
	if err := fsc.saveNodes(gn, un, balances); err != nil {
		return "", err
	}
	resp := &resolveResponse{OpID: op.ID, Kind: op.Kind.String(), Outcome: outcome}
	return string(resp.encode()), nil
}

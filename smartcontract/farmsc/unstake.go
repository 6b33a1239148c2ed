package farmsc

import (
	"go.uber.org/zap"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/state"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/logging"
)

//unstake - debit the caller's stake optimistically and issue the outbound
//token transfer returning it. The debit stands if the transfer succeeds and
//is rolled back by resolve_transfer if it fails; until the callback fires the
//account may start no other unstake or claim.
func (fsc *FarmSmartContract) unstake(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	req := &unstakeRequest{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed unstake request: %v", err)
	}
	if req.Amount == 0 {
		return "", common.NewError("invalid_request", "unstake amount must be positive")
	}
	un, err := fsc.getUserNode(t.ClientID, balances)
	if err != nil {
		return "", err
	}
	if un.PendingOp != "" {
		return "", common.NewErrorf("operation_already_pending", "operation %v is still in flight for this account", un.PendingOp)
	}

	gn.accrue(t.CreationDate)
	if err := gn.settle(un); err != nil {
		return "", err
	}
	if req.Amount > un.Staked {
		return "", common.NewErrorf("insufficient_staked_balance", "cannot unstake %v with only %v staked", req.Amount, un.Staked)
	}

	op := &PendingOperation{
		Kind:            OpUnstake,
		AccountID:       t.ClientID,
		Amount:          req.Amount,
		IssuedAt:        t.CreationDate,
		PrevStaked:      un.Staked,
		PrevClaimable:   un.Claimable,
		PrevTotalStaked: gn.TotalStaked,
	}

	staked, err := currency.MinusCoin(un.Staked, req.Amount)
	if err != nil {
		return "", err
	}
	total, err := currency.MinusCoin(gn.TotalStaked, req.Amount)
	if err != nil {
		return "", err
	}
	un.Staked = staked
	gn.TotalStaked = total

	return fsc.issueTransferCall(t, gn, un, op, gn.Config.StakeTokenID, balances)
}

//claimReward - zero the caller's claimable reward optimistically and issue
//the outbound reward token transfer, under the same pending-operation guard
//as unstake.
func (fsc *FarmSmartContract) claimReward(t *transaction.Transaction, gn *GlobalNode, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	un, err := fsc.getUserNode(t.ClientID, balances)
	if err != nil {
		return "", err
	}
	if un.PendingOp != "" {
		return "", common.NewErrorf("operation_already_pending", "operation %v is still in flight for this account", un.PendingOp)
	}

	gn.accrue(t.CreationDate)
	if err := gn.settle(un); err != nil {
		return "", err
	}
	if un.Claimable == 0 {
		return "", common.NewError("invalid_request", "no claimable reward")
	}

	op := &PendingOperation{
		Kind:            OpClaimReward,
		AccountID:       t.ClientID,
		Amount:          un.Claimable,
		IssuedAt:        t.CreationDate,
		PrevStaked:      un.Staked,
		PrevClaimable:   un.Claimable,
		PrevTotalStaked: gn.TotalStaked,
	}
	un.Claimable = 0

	return fsc.issueTransferCall(t, gn, un, op, gn.Config.RewardTokenID, balances)
}

//issueTransferCall - stage the outbound transfer, record the pending
//operation under the callback id the host issued, and mark the account. The
//local mutation is already staged by the caller; from here the operation can
//only end in Resolved-Success or Resolved-Failure.
func (fsc *FarmSmartContract) issueTransferCall(
	t *transaction.Transaction,
	gn *GlobalNode,
	un *UserNode,
	op *PendingOperation,
	token datastore.Key,
	balances c_state.StateContextI,
) (string, error) {
	transfer := state.NewTransfer(token, fsc.ID, op.AccountID, op.Amount)
	opID, err := balances.AddTransfer(transfer)
	if err != nil {
		return "", err
	}
	op.ID = opID
	un.PendingOp = opID

	if _, err := balances.InsertTrieNode(pendingOpKey(opID), op); err != nil {
		return "", err
	}
	if err := fsc.saveNodes(gn, un, balances); err != nil {
		return "", err
	}

	logging.Logger.Info("transfer call issued",
		zap.String("op_id", opID),
		zap.String("kind", op.Kind.String()),
		zap.String("account_id", op.AccountID),
		zap.Uint64("amount", uint64(op.Amount)))
	resp := &transferCallResponse{
		OpID:      opID,
		Kind:      op.Kind.String(),
		AccountID: op.AccountID,
		Token:     token,
		Amount:    op.Amount,
	}
	return string(resp.encode()), nil
}

package farmsc

import (
	"go.uber.org/zap"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/state"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/logging"
	"github.com/lau-bin/cheddar/core/util"
)

//storageDeposit - register an account, or top up an existing storage balance.
//The attached transaction value becomes the deposit; registration requires at
//least the configured minimum.
func (fsc *FarmSmartContract) storageDeposit(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	if gn.closedAt(t.CreationDate) {
		return "", common.NewError("farm_closed", "farm is past its farming end date")
	}

	req := &storageDepositRequest{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed storage deposit request: %v", err)
	}
	accountID := req.AccountID
	if accountID == "" {
		accountID = t.ClientID
	}

	un := newUserNode(accountID)
	err := balances.GetTrieNode(un.getKey(), un)
	switch err {
	case util.ErrValueNotPresent:
		if t.Value < gn.Config.MinStorageDeposit {
			return "", common.NewErrorf("insufficient_storage_deposit",
				"attached deposit %v is less than the minimum storage balance %v",
				t.Value, gn.Config.MinStorageDeposit)
		}
		un = newUserNode(accountID)
		un.StorageBalance = t.Value
		un.RewardDebt.Set(&gn.AccruedRewardPerShare.Int)
		gn.AccountsRegistered++
		ai, err := fsc.getAccountIndex(balances)
		if err != nil {
			return "", err
		}
		ai.add(accountID)
		if _, err := balances.InsertTrieNode(accountIndexKey(), ai); err != nil {
			return "", err
		}
		logging.Logger.Info("farm account registered",
			zap.String("account_id", accountID),
			zap.Uint64("deposit", uint64(t.Value)))
	case nil:
		sb, err := currency.AddCoin(un.StorageBalance, t.Value)
		if err != nil {
			return "", err
		}
		un.StorageBalance = sb
	default:
		return "", err
	}

	if err := fsc.saveNodes(gn, un, balances); err != nil {
		return "", err
	}
	resp := &storageBalanceResponse{AccountID: accountID, Total: un.StorageBalance}
	return string(resp.encode()), nil
}

//storageWithdraw - pay back part of the caller's storage balance. Whatever
//stays must still cover the minimum, so the account record remains funded.
func (fsc *FarmSmartContract) storageWithdraw(t *transaction.Transaction, gn *GlobalNode, input []byte, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	req := &storageWithdrawRequest{}
	if err := req.decode(input); err != nil {
		return "", common.NewErrorf("invalid_request", "malformed storage withdraw request: %v", err)
	}
	if req.Amount == 0 {
		return "", common.NewError("invalid_request", "withdraw amount must be positive")
	}
	un, err := fsc.getUserNode(t.ClientID, balances)
	if err != nil {
		return "", err
	}
	var available currency.Coin
	if un.StorageBalance > gn.Config.MinStorageDeposit {
		available = un.StorageBalance - gn.Config.MinStorageDeposit
	}
	if req.Amount > available {
		return "", common.NewErrorf("insufficient_storage_deposit",
			"only %v of the storage balance is withdrawable above the minimum %v",
			available, gn.Config.MinStorageDeposit)
	}

	sb, err := currency.MinusCoin(un.StorageBalance, req.Amount)
	if err != nil {
		return "", err
	}
	un.StorageBalance = sb
	transfer := state.NewTransfer("", fsc.ID, t.ClientID, req.Amount)
	if _, err := balances.AddTransfer(transfer); err != nil {
		return "", err
	}
	if err := fsc.saveNodes(nil, un, balances); err != nil {
		return "", err
	}
	logging.Logger.Info("storage balance withdrawn",
		zap.String("account_id", t.ClientID),
		zap.Uint64("amount", uint64(req.Amount)))
	resp := &storageBalanceResponse{AccountID: t.ClientID, Total: un.StorageBalance}
	return string(resp.encode()), nil
}

//storageUnregister - remove the caller's account and refund its whole storage
//deposit. Only possible once nothing is staked, nothing is claimable and no
//transfer call is in flight, so no funds can be stranded by the removal.
func (fsc *FarmSmartContract) storageUnregister(t *transaction.Transaction, gn *GlobalNode, balances c_state.StateContextI) (string, error) {
	if err := gn.checkActive(); err != nil {
		return "", err
	}
	un, err := fsc.getUserNode(t.ClientID, balances)
	if err != nil {
		return "", err
	}
	if un.PendingOp != "" {
		return "", common.NewError("operation_already_pending", "a transfer call is still in flight for this account")
	}
	if un.Staked > 0 {
		return "", common.NewError("invalid_request", "unstake everything before unregistering")
	}
	if un.Claimable > 0 {
		return "", common.NewError("invalid_request", "claim the outstanding reward before unregistering")
	}

	refund := un.StorageBalance
	if refund > 0 {
		// native refund; its outcome is not tracked, the account record
		// is gone either way
		transfer := state.NewTransfer("", fsc.ID, t.ClientID, refund)
		if _, err := balances.AddTransfer(transfer); err != nil {
			return "", err
		}
	}
	if _, err := balances.DeleteTrieNode(un.getKey()); err != nil {
		return "", err
	}
	gn.AccountsRegistered--
	ai, err := fsc.getAccountIndex(balances)
	if err != nil {
		return "", err
	}
	ai.remove(t.ClientID)
	if _, err := balances.InsertTrieNode(accountIndexKey(), ai); err != nil {
		return "", err
	}
	if err := fsc.saveNodes(gn, nil, balances); err != nil {
		return "", err
	}
	logging.Logger.Info("farm account unregistered",
		zap.String("account_id", t.ClientID),
		zap.Uint64("refund", uint64(refund)))
	resp := &storageBalanceResponse{AccountID: t.ClientID, Total: refund}
	return string(resp.encode()), nil
}

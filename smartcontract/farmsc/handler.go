package farmsc

import (
	"context"
	"net/url"
	"strconv"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/util"
)

//accountStatus - the read-only status snapshot; Claimable is recomputed
//against the query timestamp without persisting the accrual
type accountStatus struct {
	AccountID      datastore.Key    `json:"account_id"`
	Staked         currency.Coin    `json:"staked_balance"`
	Claimable      currency.Coin    `json:"claimable_reward"`
	StorageBalance currency.Coin    `json:"storage_balance"`
	Timestamp      common.Timestamp `json:"timestamp"`
}

//farmParams - the farm-wide parameters and counters
type farmParams struct {
	OwnerID            datastore.Key    `json:"owner_id"`
	StakeTokenID       datastore.Key    `json:"stake_token"`
	RewardTokenID      datastore.Key    `json:"reward_token"`
	RewardRate         currency.Coin    `json:"reward_rate"`
	FarmingStart       common.Timestamp `json:"farming_start"`
	FarmingEnd         common.Timestamp `json:"farming_end"`
	MaxStake           currency.Coin    `json:"max_stake"`
	IsActive           bool             `json:"is_active"`
	TotalStaked        currency.Coin    `json:"total_staked"`
	TotalRewarded      currency.Coin    `json:"total_rewarded"`
	AccountsRegistered int64            `json:"accounts_registered"`
}

func (fsc *FarmSmartContract) getAccountStatus(ctx context.Context, params url.Values, balances c_state.StateContextI) (interface{}, error) {
	gn, err := fsc.getGlobalNode(balances)
	if err != nil {
		return nil, err
	}
	un, err := fsc.getUserNode(params.Get("client_id"), balances)
	if err != nil {
		return nil, err
	}
	now := common.Now()
	claimable, err := gn.claimableAt(un, now)
	if err != nil {
		return nil, err
	}
	return &accountStatus{
		AccountID:      un.ID,
		Staked:         un.Staked,
		Claimable:      claimable,
		StorageBalance: un.StorageBalance,
		Timestamp:      now,
	}, nil
}

func (fsc *FarmSmartContract) getFarmParams(ctx context.Context, params url.Values, balances c_state.StateContextI) (interface{}, error) {
	gn, err := fsc.getGlobalNode(balances)
	if err != nil {
		return nil, err
	}
	return &farmParams{
		OwnerID:            gn.Config.OwnerID,
		StakeTokenID:       gn.Config.StakeTokenID,
		RewardTokenID:      gn.Config.RewardTokenID,
		RewardRate:         gn.Config.RewardRate,
		FarmingStart:       gn.Config.FarmingStart,
		FarmingEnd:         gn.Config.FarmingEnd,
		MaxStake:           gn.Config.MaxStake,
		IsActive:           gn.IsActive,
		TotalStaked:        gn.TotalStaked,
		TotalRewarded:      gn.TotalRewarded,
		AccountsRegistered: gn.AccountsRegistered,
	}, nil
}

//accountList - one page of the registered-accounts index
type accountList struct {
	Total    int             `json:"total"`
	Accounts []datastore.Key `json:"accounts"`
}

const defaultAccountPageLimit = 100

//getRegisteredAccounts - page through the registered account ids, sorted
func (fsc *FarmSmartContract) getRegisteredAccounts(ctx context.Context, params url.Values, balances c_state.StateContextI) (interface{}, error) {
	ai, err := fsc.getAccountIndex(balances)
	if err != nil {
		return nil, err
	}
	offset, limit := 0, defaultAccountPageLimit
	if s := params.Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil || offset < 0 {
			return nil, common.NewErrorf("invalid_request", "invalid offset %q", s)
		}
	}
	if s := params.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit <= 0 {
			return nil, common.NewErrorf("invalid_request", "invalid limit %q", s)
		}
	}
	page := []datastore.Key{}
	if offset < len(ai.Accounts) {
		end := offset + limit
		if end > len(ai.Accounts) {
			end = len(ai.Accounts)
		}
		page = ai.Accounts[offset:end]
	}
	return &accountList{Total: len(ai.Accounts), Accounts: page}, nil
}

//getPendingOperations - the in-flight transfer calls of an account; at most
//one under the reentrancy guard. Lets operators see operations whose callback
//the host never delivered.
func (fsc *FarmSmartContract) getPendingOperations(ctx context.Context, params url.Values, balances c_state.StateContextI) (interface{}, error) {
	un, err := fsc.getUserNode(params.Get("client_id"), balances)
	if err != nil {
		return nil, err
	}
	ops := make([]*PendingOperation, 0, 1)
	if un.PendingOp != "" {
		op := &PendingOperation{}
		err := balances.GetTrieNode(pendingOpKey(un.PendingOp), op)
		if err != nil && err != util.ErrValueNotPresent {
			return nil, err
		}
		if err == nil {
			ops = append(ops, op)
		}
	}
	return ops, nil
}

package farmsc

import (
	"fmt"

	"github.com/rcrowley/go-metrics"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/config"
	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/smartcontractinterface"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/util"
)

const (
	Seperator = smartcontractinterface.Seperator
	ADDRESS   = "b52e9857e1a23d23c9d1273fb90cecf97201a8236b4c19bcd922749dc49bb574"
	name      = "farm"

	stateVersion = "1.0"
)

type FarmSmartContract struct {
	*smartcontractinterface.SmartContract
}

func NewFarmSmartContract() smartcontractinterface.SmartContractInterface {
	var fsc = &FarmSmartContract{
		SmartContract: smartcontractinterface.NewSC(ADDRESS),
	}
	fsc.setSC(fsc.SmartContract)
	return fsc
}

func (fsc *FarmSmartContract) GetName() string {
	return name
}

func (fsc *FarmSmartContract) GetAddress() string {
	return ADDRESS
}

func (fsc *FarmSmartContract) GetRestPoints() map[string]smartcontractinterface.SmartContractRestHandler {
	return fsc.RestHandlers
}

func (fsc *FarmSmartContract) GetExecutionStats() map[string]interface{} {
	return fsc.SmartContractExecutionStats
}

func (fsc *FarmSmartContract) setSC(sc *smartcontractinterface.SmartContract) {
	fsc.SmartContract = sc
	fsc.SmartContract.RestHandlers["/status"] = fsc.getAccountStatus
	fsc.SmartContract.RestHandlers["/getConfig"] = fsc.getFarmParams
	fsc.SmartContract.RestHandlers["/getPendingOperations"] = fsc.getPendingOperations
	fsc.SmartContract.RestHandlers["/getAccounts"] = fsc.getRegisteredAccounts
	for _, fn := range []string{
		"storage_deposit", "storage_withdraw", "storage_unregister",
		"ft_on_transfer", "unstake", "claim_reward", "resolve_transfer",
		"update_settings",
	} {
		fsc.SmartContractExecutionStats[fn] = metrics.GetOrRegisterTimer(fmt.Sprintf("sc:%v:func:%v", fsc.ID, fn), nil)
	}
}

func (fsc *FarmSmartContract) Execute(t *transaction.Transaction, funcName string, input []byte, balances c_state.StateContextI) (string, error) {
	gn, err := fsc.getGlobalNode(balances)
	if err != nil {
		return "", err
	}
	switch funcName {
	case "storage_deposit":
		return fsc.storageDeposit(t, gn, input, balances)
	case "storage_withdraw":
		return fsc.storageWithdraw(t, gn, input, balances)
	case "storage_unregister":
		return fsc.storageUnregister(t, gn, balances)
	case "ft_on_transfer":
		return fsc.onTokenTransfer(t, gn, input, balances)
	case "unstake":
		return fsc.unstake(t, gn, input, balances)
	case "claim_reward":
		return fsc.claimReward(t, gn, balances)
	case "resolve_transfer":
		return fsc.resolveTransfer(t, gn, input, balances)
	case "update_settings":
		return fsc.updateSettings(t, gn, input, balances)
	default:
		return "", common.NewErrorf("failed execution", "no farm smart contract method with name %s", funcName)
	}
}

//getGlobalNode - load the farm node, falling back to the configured defaults
//when the contract has not been touched yet. Read-only; mutating handlers
//save the node themselves.
func (fsc *FarmSmartContract) getGlobalNode(balances c_state.StateContextI) (*GlobalNode, error) {
	gn := newGlobalNode()
	err := balances.GetTrieNode(gn.getKey(), gn)
	if err == nil {
		return gn, nil
	}
	if err != util.ErrValueNotPresent {
		return nil, err
	}

	const pfx = "smart_contracts.farmsc."
	var conf = config.SmartContractConfig
	gn.Config.OwnerID = conf.GetString(pfx + "owner_id")
	gn.Config.StakeTokenID = conf.GetString(pfx + "stake_token")
	gn.Config.RewardTokenID = conf.GetString(pfx + "reward_token")
	gn.Config.RewardRate = currency.Coin(conf.GetInt64(pfx + "reward_rate"))
	gn.Config.FarmingStart = common.Timestamp(conf.GetInt64(pfx + "farming_start"))
	gn.Config.FarmingEnd = common.Timestamp(conf.GetInt64(pfx + "farming_end"))
	gn.Config.MaxStake = currency.Coin(conf.GetInt64(pfx + "max_stake"))
	gn.Config.MinStorageDeposit = currency.Coin(conf.GetInt64(pfx + "min_storage_deposit"))
	gn.IsActive = true
	gn.LastUpdateTime = gn.Config.FarmingStart
	return gn, nil
}

//getAccountIndex - load the registered-accounts index, empty if the contract
//has no accounts yet
func (fsc *FarmSmartContract) getAccountIndex(balances c_state.StateContextI) (*accountIndex, error) {
	ai := &accountIndex{}
	err := balances.GetTrieNode(accountIndexKey(), ai)
	if err != nil && err != util.ErrValueNotPresent {
		return nil, err
	}
	return ai, nil
}

//getUserNode - load the account node
func (fsc *FarmSmartContract) getUserNode(id datastore.Key, balances c_state.StateContextI) (*UserNode, error) {
	un := newUserNode(id)
	err := balances.GetTrieNode(un.getKey(), un)
	if err == util.ErrValueNotPresent {
		return nil, common.NewErrorf("account_not_registered", "account %v is not registered, make a storage deposit first", id)
	}
	if err != nil {
		return nil, err
	}
	return un, nil
}

func (fsc *FarmSmartContract) saveNodes(gn *GlobalNode, un *UserNode, balances c_state.StateContextI) error {
	if un != nil {
		if _, err := balances.InsertTrieNode(un.getKey(), un); err != nil {
			return err
		}
	}
	if gn != nil {
		if _, err := balances.InsertTrieNode(gn.getKey(), gn); err != nil {
			return err
		}
	}
	return nil
}

package farmsc

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
)

const (
	ownerID    = "owner_client_id"
	stakeToken = "stake_token_contract"
	rwrdToken  = "reward_token_contract"

	clientA = "client_a"
	clientB = "client_b"

	farmStart = common.Timestamp(1000000)
	farmEnd   = farmStart + 100000

	minDeposit = currency.Coin(50)
)

var txnSeq int

func newTransaction(client datastore.Key, value currency.Coin, now common.Timestamp) *transaction.Transaction {
	txnSeq++
	return &transaction.Transaction{
		Hash:         fmt.Sprintf("txn_hash_%d", txnSeq),
		ClientID:     client,
		ToClientID:   ADDRESS,
		Value:        value,
		CreationDate: now,
	}
}

func testConfig() *FarmConfig {
	return &FarmConfig{
		OwnerID:           ownerID,
		StakeTokenID:      stakeToken,
		RewardTokenID:     rwrdToken,
		RewardRate:        100,
		FarmingStart:      farmStart,
		FarmingEnd:        farmEnd,
		MinStorageDeposit: minDeposit,
	}
}

func newTestFarm(t *testing.T, conf *FarmConfig) (*FarmSmartContract, *testBalances) {
	t.Helper()
	fsc := NewFarmSmartContract().(*FarmSmartContract)
	tb := newTestBalances()
	gn := newGlobalNode()
	gn.Config = conf
	gn.IsActive = true
	gn.LastUpdateTime = conf.FarmingStart
	_, err := tb.InsertTrieNode(gn.getKey(), gn)
	require.NoError(t, err)
	return fsc, tb
}

func loadGlobalNode(t *testing.T, fsc *FarmSmartContract, tb *testBalances) *GlobalNode {
	t.Helper()
	gn, err := fsc.getGlobalNode(tb)
	require.NoError(t, err)
	return gn
}

func loadUserNode(t *testing.T, fsc *FarmSmartContract, tb *testBalances, id datastore.Key) *UserNode {
	t.Helper()
	un, err := fsc.getUserNode(id, tb)
	require.NoError(t, err)
	return un
}

func mustEncode(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func execute(fsc *FarmSmartContract, tb *testBalances, txn *transaction.Transaction, funcName string, input []byte) (string, error) {
	tb.setTransaction(txn)
	return fsc.Execute(txn, funcName, input, tb)
}

func registerAccount(t *testing.T, fsc *FarmSmartContract, tb *testBalances, client datastore.Key, deposit currency.Coin, now common.Timestamp) {
	t.Helper()
	txn := newTransaction(client, deposit, now)
	_, err := execute(fsc, tb, txn, "storage_deposit", nil)
	require.NoError(t, err)
}

func stake(fsc *FarmSmartContract, tb *testBalances, sender datastore.Key, amount currency.Coin, now common.Timestamp) (string, error) {
	txn := newTransaction(stakeToken, 0, now)
	input, _ := json.Marshal(&stakeNotification{SenderID: sender, Amount: amount})
	return execute(fsc, tb, txn, "ft_on_transfer", input)
}

func mustStake(t *testing.T, fsc *FarmSmartContract, tb *testBalances, sender datastore.Key, amount currency.Coin, now common.Timestamp) {
	t.Helper()
	_, err := stake(fsc, tb, sender, amount, now)
	require.NoError(t, err)
}

func unstake(fsc *FarmSmartContract, tb *testBalances, client datastore.Key, amount currency.Coin, now common.Timestamp) (string, error) {
	txn := newTransaction(client, 0, now)
	input, _ := json.Marshal(&unstakeRequest{Amount: amount})
	return execute(fsc, tb, txn, "unstake", input)
}

func claimReward(fsc *FarmSmartContract, tb *testBalances, client datastore.Key, now common.Timestamp) (string, error) {
	txn := newTransaction(client, 0, now)
	return execute(fsc, tb, txn, "claim_reward", nil)
}

func resolve(fsc *FarmSmartContract, tb *testBalances, opID datastore.Key, success bool, now common.Timestamp) (string, error) {
	txn := newTransaction(ADDRESS, 0, now)
	input, _ := json.Marshal(&resolveRequest{OpID: opID, Success: success})
	return execute(fsc, tb, txn, "resolve_transfer", input)
}

// lastOpID - the callback id of the most recently issued transfer call
func lastOpID(t *testing.T, tb *testBalances) datastore.Key {
	t.Helper()
	tc := tb.lastTransferCall()
	require.NotNil(t, tc)
	return tc.ID
}

func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	cerr, ok := err.(*common.Error)
	require.True(t, ok, "expected a common.Error, got %T: %v", err, err)
	require.Equal(t, code, cerr.Code)
}

package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	bstate "github.com/lau-bin/cheddar/chaincore/state"
	"github.com/lau-bin/cheddar/chaincore/smartcontractstate"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/util"
)

type testNode struct {
	Value string `json:"value"`
}

func (n *testNode) Encode() []byte {
	buff, _ := json.Marshal(n)
	return buff
}

func (n *testNode) Decode(input []byte) error {
	return json.Unmarshal(input, n)
}

func newTestTxn() *transaction.Transaction {
	return &transaction.Transaction{
		Hash:       "txn_hash",
		ClientID:   "client_1",
		ToClientID: "sc_address",
	}
}

func TestStateContext_StagedWrites(t *testing.T) {
	store := smartcontractstate.NewMemorySCState()
	sc := NewStateContext(store, newTestTxn())

	_, err := sc.InsertTrieNode("k1", &testNode{Value: "v1"})
	require.NoError(t, err)

	// staged writes are visible through the context but not the store
	var n testNode
	require.NoError(t, sc.GetTrieNode("k1", &n))
	require.Equal(t, "v1", n.Value)
	_, err = store.GetNode("k1")
	require.Equal(t, util.ErrValueNotPresent, err)

	require.NoError(t, sc.Commit())
	value, err := store.GetNode("k1")
	require.NoError(t, err)
	require.Equal(t, (&testNode{Value: "v1"}).Encode(), value)
}

func TestStateContext_StagedDeletes(t *testing.T) {
	store := smartcontractstate.NewMemorySCState()
	require.NoError(t, store.SetNode("k1", (&testNode{Value: "v1"}).Encode()))
	sc := NewStateContext(store, newTestTxn())

	_, err := sc.DeleteTrieNode("k1")
	require.NoError(t, err)

	var n testNode
	require.Equal(t, util.ErrValueNotPresent, sc.GetTrieNode("k1", &n))
	// the store still has it until commit
	_, err = store.GetNode("k1")
	require.NoError(t, err)

	// a re-insert supersedes the staged delete
	_, err = sc.InsertTrieNode("k1", &testNode{Value: "v2"})
	require.NoError(t, err)
	require.NoError(t, sc.GetTrieNode("k1", &n))
	require.Equal(t, "v2", n.Value)

	_, err = sc.DeleteTrieNode("k1")
	require.NoError(t, err)
	require.NoError(t, sc.Commit())
	_, err = store.GetNode("k1")
	require.Equal(t, util.ErrValueNotPresent, err)
}

func TestStateContext_Discard(t *testing.T) {
	store := smartcontractstate.NewMemorySCState()
	sc := NewStateContext(store, newTestTxn())

	_, err := sc.InsertTrieNode("k1", &testNode{Value: "v1"})
	require.NoError(t, err)
	_, err = sc.AddTransfer(bstate.NewTransfer("tok", "client_1", "client_2", 10))
	require.NoError(t, err)

	sc.Discard()
	require.Empty(t, sc.GetTransferCalls())
	require.NoError(t, sc.Commit())
	_, err = store.GetNode("k1")
	require.Equal(t, util.ErrValueNotPresent, err)
}

func TestStateContext_AddTransfer(t *testing.T) {
	sc := NewStateContext(smartcontractstate.NewMemorySCState(), newTestTxn())

	// only the transaction parties may be debited
	_, err := sc.AddTransfer(bstate.NewTransfer("tok", "someone_else", "client_2", 10))
	require.Equal(t, bstate.ErrInvalidTransfer, err)

	// callback ids are sequential within the transaction
	id0, err := sc.AddTransfer(bstate.NewTransfer("tok", "client_1", "client_2", 10))
	require.NoError(t, err)
	require.Equal(t, "call:0:txn_hash", id0)
	id1, err := sc.AddTransfer(bstate.NewTransfer("tok", "sc_address", "client_1", 5))
	require.NoError(t, err)
	require.Equal(t, "call:1:txn_hash", id1)

	calls := sc.GetTransferCalls()
	require.Len(t, calls, 2)
	require.Equal(t, id0, calls[0].ID)
	require.Equal(t, id1, calls[1].ID)
	require.Len(t, sc.GetTransfers(), 2)
}

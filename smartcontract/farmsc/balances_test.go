package farmsc

import (
	"fmt"

	cstate "github.com/lau-bin/cheddar/chaincore/chain/state"
	bstate "github.com/lau-bin/cheddar/chaincore/state"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/util"
)

// testBalances implements chain/state.StateContextI as a fake host runtime.
// Nodes are stored serialized so reads hand out copies, like the real host.
type testBalances struct {
	txn       *transaction.Transaction
	tree      map[datastore.Key][]byte
	transfers []*cstate.TransferCall
	callSeq   int
	inserts   int
	deletes   int
}

func newTestBalances() *testBalances {
	return &testBalances{tree: make(map[datastore.Key][]byte)}
}

func (tb *testBalances) setTransaction(t *transaction.Transaction) {
	tb.txn = t
}

func (tb *testBalances) GetTransaction() *transaction.Transaction {
	return tb.txn
}

func (tb *testBalances) GetTrieNode(key datastore.Key, node util.Serializable) error {
	value, ok := tb.tree[key]
	if !ok {
		return util.ErrValueNotPresent
	}
	return node.Decode(value)
}

func (tb *testBalances) InsertTrieNode(key datastore.Key, node util.Serializable) (datastore.Key, error) {
	tb.tree[key] = node.Encode()
	tb.inserts++
	return key, nil
}

func (tb *testBalances) DeleteTrieNode(key datastore.Key) (datastore.Key, error) {
	delete(tb.tree, key)
	tb.deletes++
	return key, nil
}

func (tb *testBalances) AddTransfer(t *bstate.Transfer) (datastore.Key, error) {
	if t.ClientID != tb.txn.ClientID && t.ClientID != tb.txn.ToClientID {
		return datastore.EmptyKey, bstate.ErrInvalidTransfer
	}
	id := fmt.Sprintf("call:%v:%v", tb.callSeq, tb.txn.Hash)
	tb.callSeq++
	tb.transfers = append(tb.transfers, &cstate.TransferCall{ID: id, Transfer: t})
	return id, nil
}

func (tb *testBalances) GetTransfers() []*bstate.Transfer {
	ts := make([]*bstate.Transfer, 0, len(tb.transfers))
	for _, tc := range tb.transfers {
		ts = append(ts, tc.Transfer)
	}
	return ts
}

func (tb *testBalances) GetTransferCalls() []*cstate.TransferCall {
	return tb.transfers
}

func (tb *testBalances) lastTransferCall() *cstate.TransferCall {
	if len(tb.transfers) == 0 {
		return nil
	}
	return tb.transfers[len(tb.transfers)-1]
}

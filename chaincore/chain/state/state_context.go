package state

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	bstate "github.com/lau-bin/cheddar/chaincore/state"
	"github.com/lau-bin/cheddar/chaincore/smartcontractstate"
	"github.com/lau-bin/cheddar/chaincore/transaction"
	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/util"
)

//TransferCall - an outbound token transfer staged during an invocation,
//identified by the callback id the host resolves it with later.
type TransferCall struct {
	ID       datastore.Key    `json:"id"`
	Transfer *bstate.Transfer `json:"transfer"`
}

/*StateContextI - a context interface the smart contract uses to manipulate
its persisted state and to issue outbound transfer calls. All writes are
staged; the host commits them only if the top-level call succeeds. */
type StateContextI interface {
	GetTransaction() *transaction.Transaction
	GetTrieNode(key datastore.Key, node util.Serializable) error
	InsertTrieNode(key datastore.Key, node util.Serializable) (datastore.Key, error)
	DeleteTrieNode(key datastore.Key) (datastore.Key, error)
	// AddTransfer stages an outbound transfer call on the external token
	// contract and returns the callback id the host will deliver the
	// outcome under. The host guarantees at most one resolution per id.
	AddTransfer(t *bstate.Transfer) (datastore.Key, error)
	GetTransfers() []*bstate.Transfer
	GetTransferCalls() []*TransferCall
}

//StateContext - a context object used to manipulate contract state
type StateContext struct {
	mutex     sync.Mutex
	store     smartcontractstate.SCStateI
	txn       *transaction.Transaction
	writes    map[datastore.Key][]byte
	deletes   map[datastore.Key]bool
	transfers []*TransferCall
	callSeq   int
}

//NewStateContext - create a new state context over the given node store for
//one top-level invocation
func NewStateContext(store smartcontractstate.SCStateI, txn *transaction.Transaction) *StateContext {
	return &StateContext{
		store:   store,
		txn:     txn,
		writes:  make(map[datastore.Key][]byte),
		deletes: make(map[datastore.Key]bool),
	}
}

func (sc *StateContext) GetTransaction() *transaction.Transaction {
	return sc.txn
}

func (sc *StateContext) GetTrieNode(key datastore.Key, node util.Serializable) error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	if sc.deletes[key] {
		return util.ErrValueNotPresent
	}
	if value, ok := sc.writes[key]; ok {
		return node.Decode(value)
	}
	value, err := sc.store.GetNode(key)
	if err != nil {
		return err
	}
	return node.Decode(value)
}

func (sc *StateContext) InsertTrieNode(key datastore.Key, node util.Serializable) (datastore.Key, error) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.writes[key] = node.Encode()
	delete(sc.deletes, key)
	return key, nil
}

func (sc *StateContext) DeleteTrieNode(key datastore.Key) (datastore.Key, error) {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	delete(sc.writes, key)
	sc.deletes[key] = true
	return key, nil
}

func (sc *StateContext) AddTransfer(t *bstate.Transfer) (datastore.Key, error) {
	if t.ClientID != sc.txn.ClientID && t.ClientID != sc.txn.ToClientID {
		return datastore.EmptyKey, bstate.ErrInvalidTransfer
	}
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	id := fmt.Sprintf("call:%v:%v", sc.callSeq, sc.txn.Hash)
	sc.callSeq++
	sc.transfers = append(sc.transfers, &TransferCall{ID: id, Transfer: t})
	return id, nil
}

func (sc *StateContext) GetTransfers() []*bstate.Transfer {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	ts := make([]*bstate.Transfer, 0, len(sc.transfers))
	for _, tc := range sc.transfers {
		ts = append(ts, tc.Transfer)
	}
	return ts
}

func (sc *StateContext) GetTransferCalls() []*TransferCall {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	return sc.transfers
}

//Commit - flush the staged writes to the backing node store. The host calls
//this only when the top-level invocation returned without error.
func (sc *StateContext) Commit() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	for key, value := range sc.writes {
		if err := sc.store.SetNode(key, value); err != nil {
			return errors.Wrapf(err, "committing node %v", key)
		}
	}
	for key := range sc.deletes {
		if err := sc.store.DeleteNode(key); err != nil {
			return errors.Wrapf(err, "deleting node %v", key)
		}
	}
	sc.writes = make(map[datastore.Key][]byte)
	sc.deletes = make(map[datastore.Key]bool)
	return nil
}

//Discard - drop all staged writes and transfer calls
func (sc *StateContext) Discard() {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	sc.writes = make(map[datastore.Key][]byte)
	sc.deletes = make(map[datastore.Key]bool)
	sc.transfers = nil
}

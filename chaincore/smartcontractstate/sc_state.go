package smartcontractstate

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lau-bin/cheddar/core/datastore"
	"github.com/lau-bin/cheddar/core/util"
)

//SCStateI - the durable key/value node store the host runtime provides to a
//smart contract. Values are the serialized trie nodes of the contract state.
type SCStateI interface {
	GetNode(key datastore.Key) ([]byte, error)
	SetNode(key datastore.Key, value []byte) error
	DeleteNode(key datastore.Key) error
}

//MemorySCState - an in-memory SCStateI
type MemorySCState struct {
	mutex sync.RWMutex
	nodes map[datastore.Key][]byte
}

//NewMemorySCState - create a new in-memory node store
func NewMemorySCState() *MemorySCState {
	return &MemorySCState{nodes: make(map[datastore.Key][]byte)}
}

func (ms *MemorySCState) GetNode(key datastore.Key) ([]byte, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	value, ok := ms.nodes[key]
	if !ok {
		return nil, util.ErrValueNotPresent
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (ms *MemorySCState) SetNode(key datastore.Key, value []byte) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	ms.nodes[key] = cp
	return nil
}

func (ms *MemorySCState) DeleteNode(key datastore.Key) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.nodes, key)
	return nil
}

//CachedSCState - an SCStateI wrapper keeping recently used nodes in an LRU
//cache in front of a slower backing store
type CachedSCState struct {
	store SCStateI
	cache *lru.Cache[datastore.Key, []byte]
}

//NewCachedSCState - wrap the given store with an LRU node cache of the given size
func NewCachedSCState(store SCStateI, size int) (*CachedSCState, error) {
	cache, err := lru.New[datastore.Key, []byte](size)
	if err != nil {
		return nil, err
	}
	return &CachedSCState{store: store, cache: cache}, nil
}

func (cs *CachedSCState) GetNode(key datastore.Key) ([]byte, error) {
	if value, ok := cs.cache.Get(key); ok {
		cp := make([]byte, len(value))
		copy(cp, value)
		return cp, nil
	}
	value, err := cs.store.GetNode(key)
	if err != nil {
		return nil, err
	}
	cs.cache.Add(key, value)
	return value, nil
}

func (cs *CachedSCState) SetNode(key datastore.Key, value []byte) error {
	if err := cs.store.SetNode(key, value); err != nil {
		return err
	}
	cs.cache.Add(key, value)
	return nil
}

func (cs *CachedSCState) DeleteNode(key datastore.Key) error {
	if err := cs.store.DeleteNode(key); err != nil {
		return err
	}
	cs.cache.Remove(key)
	return nil
}

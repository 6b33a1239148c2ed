package transaction

import (
	"encoding/json"

	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
)

//Transaction - the call the host runtime delivers to a smart contract entry
//point. ClientID is the immediate caller of this invocation; for callbacks it
//is the contract's own address.
type Transaction struct {
	// Hash of the transaction
	Hash datastore.Key `json:"hash"`

	// ClientID of the client issuing the transaction
	ClientID datastore.Key `json:"client_id"`

	// ToClientID - the address of the smart contract being called
	ToClientID datastore.Key `json:"to_client_id,omitempty"`

	// Value - the native deposit attached to this transaction
	Value currency.Coin `json:"transaction_value"`

	// TransactionData - the data associated with the transaction
	TransactionData string `json:"transaction_data"`

	CreationDate common.Timestamp `json:"creation_date"`
}

func (t *Transaction) Encode() []byte {
	buff, _ := json.Marshal(t)
	return buff
}

func (t *Transaction) Decode(input []byte) error {
	return json.Unmarshal(input, t)
}

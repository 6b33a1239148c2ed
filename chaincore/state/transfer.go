package state

import (
	"encoding/json"

	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
)

var ErrInvalidTransfer = common.NewError("invalid_transfer", "invalid transfer of state")

//Transfer - a data structure to hold a token transfer from one client to another.
//Token names the fungible token contract the transfer moves; an empty Token
//means the host's native balance.
type Transfer struct {
	Token      datastore.Key `json:"token,omitempty"`
	ClientID   datastore.Key `json:"from"`
	ToClientID datastore.Key `json:"to"`
	Amount     currency.Coin `json:"amount"`
}

//NewTransfer - create a new transfer
func NewTransfer(token, fromClientID, toClientID datastore.Key, amount currency.Coin) *Transfer {
	t := &Transfer{Token: token, ClientID: fromClientID, ToClientID: toClientID, Amount: amount}
	return t
}

func (t *Transfer) Encode() []byte {
	buff, _ := json.Marshal(t)
	return buff
}

func (t *Transfer) Decode(input []byte) error {
	err := json.Unmarshal(input, t)
	return err
}

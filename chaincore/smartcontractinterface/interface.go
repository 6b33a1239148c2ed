package smartcontractinterface

import (
	"context"
	"encoding/json"
	"net/url"

	c_state "github.com/lau-bin/cheddar/chaincore/chain/state"
	"github.com/lau-bin/cheddar/chaincore/transaction"
)

const Seperator = ":"

type SmartContractRestHandler func(ctx context.Context, params url.Values, balances c_state.StateContextI) (interface{}, error)

type SmartContract struct {
	ID                          string
	RestHandlers                map[string]SmartContractRestHandler
	SmartContractExecutionStats map[string]interface{}
}

func NewSC(id string) *SmartContract {
	restHandlers := make(map[string]SmartContractRestHandler)
	scExecStats := make(map[string]interface{})
	return &SmartContract{
		ID:                          id,
		RestHandlers:                restHandlers,
		SmartContractExecutionStats: scExecStats,
	}
}

type SmartContractTransactionData struct {
	FunctionName string          `json:"name"`
	InputData    json.RawMessage `json:"input"`
}

type SmartContractInterface interface {
	Execute(t *transaction.Transaction, funcName string, input []byte, balances c_state.StateContextI) (string, error)
	GetName() string
	GetAddress() string
	GetRestPoints() map[string]SmartContractRestHandler
	GetExecutionStats() map[string]interface{}
}

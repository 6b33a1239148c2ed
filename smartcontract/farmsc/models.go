package farmsc

import (
	"encoding/json"
	"math/big"
	"sort"
	"strings"

	"github.com/lau-bin/cheddar/chaincore/currency"
	"github.com/lau-bin/cheddar/core/common"
	"github.com/lau-bin/cheddar/core/datastore"
)

//bigShare - an integer scaled by rewardPrecision, used for the
//reward-per-share accumulator and the per-account reward debt. Marshals as a
//decimal string so no precision is lost in the persisted node.
type bigShare struct {
	big.Int
}

func (b bigShare) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Text(10) + `"`), nil
}

func (b *bigShare) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		b.SetInt64(0)
		return nil
	}
	if _, ok := b.SetString(s, 10); !ok {
		return common.NewErrorf("decoding_error", "invalid big integer %q", s)
	}
	return nil
}

//FarmConfig - the operator-fixed parameters of the farm
type FarmConfig struct {
	OwnerID datastore.Key `json:"owner_id"`
	// StakeTokenID - the fungible token contract whose transfer
	// notifications credit stake
	StakeTokenID datastore.Key `json:"stake_token"`
	// RewardTokenID - the token rewards are paid out in
	RewardTokenID datastore.Key `json:"reward_token"`
	// RewardRate - pool-wide emission, reward units per second
	RewardRate   currency.Coin    `json:"reward_rate"`
	FarmingStart common.Timestamp `json:"farming_start"`
	FarmingEnd   common.Timestamp `json:"farming_end"`
	// MaxStake - cap on TotalStaked; 0 means unlimited
	MaxStake          currency.Coin `json:"max_stake"`
	MinStorageDeposit currency.Coin `json:"min_storage_deposit"`
}

//GlobalNode - the farm-wide state node
type GlobalNode struct {
	ID       datastore.Key `json:"id"`
	Version  string        `json:"version"`
	Config   *FarmConfig   `json:"config"`
	IsActive bool          `json:"is_active"`
	// TotalStaked always equals the sum of Staked over all accounts
	TotalStaked   currency.Coin `json:"total_staked"`
	TotalRewarded currency.Coin `json:"total_rewarded"`
	// AccruedRewardPerShare is monotonically non-decreasing
	AccruedRewardPerShare bigShare         `json:"accrued_reward_per_share"`
	LastUpdateTime        common.Timestamp `json:"last_update_time"`
	AccountsRegistered    int64            `json:"accounts_registered"`
}

func newGlobalNode() *GlobalNode {
	return &GlobalNode{ID: ADDRESS, Version: stateVersion, Config: &FarmConfig{}}
}

func (gn *GlobalNode) Encode() []byte {
	buff, _ := json.Marshal(gn)
	return buff
}

func (gn *GlobalNode) Decode(input []byte) error {
	return json.Unmarshal(input, gn)
}

func (gn *GlobalNode) getKey() datastore.Key {
	return gn.ID + Seperator + "global"
}

func (gn *GlobalNode) checkActive() error {
	if !gn.IsActive {
		return common.NewError("farm_inactive", "farm is not active")
	}
	return nil
}

//closedAt - after FarmingEnd no new deposits or stakes are accepted;
//unstaking and claiming stay open. A zero FarmingEnd means the farm has no
//end, matching the accrual clamp.
func (gn *GlobalNode) closedAt(now common.Timestamp) bool {
	return gn.Config.FarmingEnd > 0 && now >= gn.Config.FarmingEnd
}

//UserNode - per-account staked balance, reward debt and storage bookkeeping
type UserNode struct {
	ID             datastore.Key `json:"id"`
	StorageBalance currency.Coin `json:"storage_balance"`
	Staked         currency.Coin `json:"staked_balance"`
	RewardDebt     bigShare      `json:"reward_debt"`
	// Claimable - reward settled but not yet paid out
	Claimable currency.Coin `json:"claimable_reward"`
	// PendingOp - callback id of the outstanding unstake/claim call, if
	// any; at most one may be in flight per account
	PendingOp datastore.Key `json:"pending_op,omitempty"`
}

func newUserNode(id datastore.Key) *UserNode {
	return &UserNode{ID: id}
}

func (un *UserNode) Encode() []byte {
	buff, _ := json.Marshal(un)
	return buff
}

func (un *UserNode) Decode(input []byte) error {
	return json.Unmarshal(input, un)
}

func (un *UserNode) getKey() datastore.Key {
	return ADDRESS + Seperator + "account" + Seperator + un.ID
}

//accountIndex - the sorted ids of all registered accounts, kept as its own
//trie node so the account list can be served without scanning the key/value
//store
type accountIndex struct {
	Accounts []datastore.Key `json:"accounts"`
}

func (ai *accountIndex) Encode() []byte {
	buff, _ := json.Marshal(ai)
	return buff
}

func (ai *accountIndex) Decode(input []byte) error {
	return json.Unmarshal(input, ai)
}

func accountIndexKey() datastore.Key {
	return ADDRESS + Seperator + "accounts"
}

//add - insert keeping the list sorted; false if already present
func (ai *accountIndex) add(id datastore.Key) bool {
	i := sort.SearchStrings(ai.Accounts, id)
	if i < len(ai.Accounts) && ai.Accounts[i] == id {
		return false
	}
	ai.Accounts = append(ai.Accounts, "")
	copy(ai.Accounts[i+1:], ai.Accounts[i:])
	ai.Accounts[i] = id
	return true
}

//remove - false if absent
func (ai *accountIndex) remove(id datastore.Key) bool {
	i := sort.SearchStrings(ai.Accounts, id)
	if i >= len(ai.Accounts) || ai.Accounts[i] != id {
		return false
	}
	ai.Accounts = append(ai.Accounts[:i], ai.Accounts[i+1:]...)
	return true
}

//OperationKind - the kind of an in-flight transfer call
type OperationKind int

const (
	OpUnstake OperationKind = iota
	OpClaimReward
)

func (k OperationKind) String() string {
	switch k {
	case OpUnstake:
		return "unstake"
	case OpClaimReward:
		return "claim_reward"
	default:
		return "unknown"
	}
}

//PendingOperation - one in-flight outbound transfer call, keyed by the
//callback id the host issued for it. Created after the optimistic local
//mutation is staged, consumed exactly once by resolve_transfer. If the host
//never delivers the callback the operation and its optimistic mutation stay
//staged permanently; that risk is inherent to the host model and is surfaced
//through the /getPendingOperations view rather than masked.
type PendingOperation struct {
	ID        datastore.Key    `json:"id"`
	Kind      OperationKind    `json:"kind"`
	AccountID datastore.Key    `json:"account_id"`
	Amount    currency.Coin    `json:"amount"`
	IssuedAt  common.Timestamp `json:"issued_at"`

	// pre-mutation snapshot, kept for audit; resolution re-credits Amount
	// rather than writing these back, see resolve_transfer
	PrevStaked      currency.Coin `json:"prev_staked_balance"`
	PrevClaimable   currency.Coin `json:"prev_claimable_reward"`
	PrevTotalStaked currency.Coin `json:"prev_total_staked"`
}

func (op *PendingOperation) Encode() []byte {
	buff, _ := json.Marshal(op)
	return buff
}

func (op *PendingOperation) Decode(input []byte) error {
	return json.Unmarshal(input, op)
}

func pendingOpKey(id datastore.Key) datastore.Key {
	return ADDRESS + Seperator + "pending" + Seperator + id
}

type storageDepositRequest struct {
	AccountID datastore.Key `json:"account_id,omitempty"`
}

func (r *storageDepositRequest) decode(input []byte) error {
	if len(input) == 0 {
		return nil
	}
	return json.Unmarshal(input, r)
}

type storageWithdrawRequest struct {
	Amount currency.Coin `json:"amount"`
}

func (r *storageWithdrawRequest) decode(input []byte) error {
	return json.Unmarshal(input, r)
}

//stakeNotification - the inbound "received tokens, please credit sender"
//message from the stake token contract
type stakeNotification struct {
	SenderID datastore.Key `json:"sender_id"`
	Amount   currency.Coin `json:"amount"`
	Msg      string        `json:"msg,omitempty"`
}

func (r *stakeNotification) decode(input []byte) error {
	return json.Unmarshal(input, r)
}

type unstakeRequest struct {
	Amount currency.Coin `json:"amount"`
}

func (r *unstakeRequest) decode(input []byte) error {
	return json.Unmarshal(input, r)
}

type resolveRequest struct {
	OpID    datastore.Key `json:"op_id"`
	Success bool          `json:"success"`
}

func (r *resolveRequest) decode(input []byte) error {
	return json.Unmarshal(input, r)
}

type updateSettingsRequest struct {
	IsActive   *bool             `json:"is_active,omitempty"`
	RewardRate *currency.Coin    `json:"reward_rate,omitempty"`
	FarmingEnd *common.Timestamp `json:"farming_end,omitempty"`
	MaxStake   *currency.Coin    `json:"max_stake,omitempty"`
}

func (r *updateSettingsRequest) decode(input []byte) error {
	return json.Unmarshal(input, r)
}

type stakeResponse struct {
	AccountID datastore.Key `json:"account_id"`
	Accepted  currency.Coin `json:"accepted"`
	// Refund - the part of the transfer the farm did not accept; the token
	// contract returns it to the sender
	Refund currency.Coin `json:"refund"`
	Staked currency.Coin `json:"staked_balance"`
}

func (r *stakeResponse) encode() []byte {
	buff, _ := json.Marshal(r)
	return buff
}

type transferCallResponse struct {
	OpID      datastore.Key `json:"op_id"`
	Kind      string        `json:"kind"`
	AccountID datastore.Key `json:"account_id"`
	Token     datastore.Key `json:"token"`
	Amount    currency.Coin `json:"amount"`
}

func (r *transferCallResponse) encode() []byte {
	buff, _ := json.Marshal(r)
	return buff
}

type resolveResponse struct {
	OpID    datastore.Key `json:"op_id"`
	Kind    string        `json:"kind"`
	Outcome string        `json:"outcome"`
}

func (r *resolveResponse) encode() []byte {
	buff, _ := json.Marshal(r)
	return buff
}

type storageBalanceResponse struct {
	AccountID datastore.Key `json:"account_id"`
	Total     currency.Coin `json:"total"`
}

func (r *storageBalanceResponse) encode() []byte {
	buff, _ := json.Marshal(r)
	return buff
}

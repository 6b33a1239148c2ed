package farmsc

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalNodeEncodeDecode(t *testing.T) {
	gn := newGlobalNode()
	gn.Config = testConfig()
	gn.IsActive = true
	gn.TotalStaked = 12345
	gn.TotalRewarded = 678
	gn.LastUpdateTime = farmStart + 42
	gn.AccountsRegistered = 3
	// larger than uint64, must survive the round trip untruncated
	gn.AccruedRewardPerShare.Mul(big.NewInt(1<<62), rewardPrecision)

	got := newGlobalNode()
	require.NoError(t, got.Decode(gn.Encode()))
	require.Equal(t, gn, got)
	require.Zero(t, got.AccruedRewardPerShare.Cmp(&gn.AccruedRewardPerShare.Int))
}

func TestUserNodeEncodeDecode(t *testing.T) {
	un := newUserNode(clientA)
	un.StorageBalance = 50
	un.Staked = 100
	un.Claimable = 7
	un.PendingOp = "call:0:some_hash"
	un.RewardDebt.SetString("123456789012345678901234567890", 10)

	got := newUserNode(clientA)
	require.NoError(t, got.Decode(un.Encode()))
	require.Equal(t, un, got)
}

func TestBigShareJSON(t *testing.T) {
	var b bigShare
	require.NoError(t, b.UnmarshalJSON([]byte(`"42"`)))
	require.EqualValues(t, 42, b.Int64())

	// persisted as a decimal string so precision cannot be lost
	out, err := b.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"42"`, string(out))

	require.NoError(t, b.UnmarshalJSON([]byte(`null`)))
	require.Zero(t, b.Sign())

	require.Error(t, b.UnmarshalJSON([]byte(`"not a number"`)))
}

func TestNodeKeys(t *testing.T) {
	gn := newGlobalNode()
	require.Equal(t, ADDRESS+":global", gn.getKey())

	un := newUserNode(clientA)
	require.Equal(t, ADDRESS+":account:"+clientA, un.getKey())
	require.True(t, strings.HasPrefix(pendingOpKey("call:0:h"), ADDRESS+":pending:"))
}

func TestAccountIndex(t *testing.T) {
	ai := &accountIndex{}
	require.True(t, ai.add("charlie"))
	require.True(t, ai.add("alice"))
	require.True(t, ai.add("bob"))
	require.False(t, ai.add("bob"))
	require.Equal(t, []string{"alice", "bob", "charlie"}, ai.Accounts)

	require.True(t, ai.remove("bob"))
	require.False(t, ai.remove("bob"))
	require.Equal(t, []string{"alice", "charlie"}, ai.Accounts)

	got := &accountIndex{}
	require.NoError(t, got.Decode(ai.Encode()))
	require.Equal(t, ai, got)
}

func TestOperationKindString(t *testing.T) {
	require.Equal(t, "unstake", OpUnstake.String())
	require.Equal(t, "claim_reward", OpClaimReward.String())
	require.Equal(t, "unknown", OperationKind(99).String())
}

func TestStorageDepositRequestDecode(t *testing.T) {
	r := &storageDepositRequest{}
	require.NoError(t, r.decode(nil))
	require.Empty(t, r.AccountID)

	require.NoError(t, r.decode([]byte(`{"account_id":"abc"}`)))
	require.EqualValues(t, "abc", r.AccountID)

	require.Error(t, r.decode([]byte(`{bad`)))
}

package genesis

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/timelock"
)

var (
	testAdmin    = common.HexToAddress("0x1234567890123456789012345678901234567890")
	testTimelock = common.HexToAddress("0x0165878A594ca255338adfa4d48449f69242Eb8F")
	testCode     = common.FromHex("0x6080604052")
)

func testInput() timelock.Input {
	return timelock.Input{MinDelay: big.NewInt(3600), Admin: testAdmin, Timelock: testTimelock}
}

func TestTimelockContract(t *testing.T) {
	c, err := TimelockContract(timelock.LayoutOZv4, testInput(), testCode)
	require.NoError(t, err)

	want, err := timelock.Simulate(timelock.LayoutOZv4, testInput())
	require.NoError(t, err)

	acc := c.Account()
	assert.Equal(t, testTimelock, c.Address)
	assert.Equal(t, testCode, acc.Code)
	assert.Equal(t, 0, acc.Balance.Sign())
	assert.Equal(t, map[common.Hash]common.Hash(want), acc.Storage)
}

func TestTimelockContract_Overflow(t *testing.T) {
	in := testInput()
	in.MinDelay = new(big.Int).Lsh(big.NewInt(1), 256)
	_, err := TimelockContract(timelock.LayoutOZv4, in, testCode)
	assert.ErrorIs(t, err, pkgerrors.ErrFieldOverflow)
}

func TestNewAlloc(t *testing.T) {
	other := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	base := types.GenesisAlloc{other: {Balance: big.NewInt(5)}}

	c, err := TimelockContract(timelock.LayoutOZv4, testInput(), testCode)
	require.NoError(t, err)

	alloc, err := NewAlloc(base, c)
	require.NoError(t, err)
	assert.Len(t, alloc, 2)
	assert.Len(t, base, 1)

	_, err = NewAlloc(alloc, c)
	assert.Error(t, err)
}

func TestAlloc_JSONRoundTrip(t *testing.T) {
	c, err := TimelockContract(timelock.LayoutOZv4, testInput(), testCode)
	require.NoError(t, err)
	alloc, err := NewAlloc(nil, c)
	require.NoError(t, err)

	data, err := json.MarshalIndent(alloc, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`"0x0000000000000000000000000000000000000000000000000000000000000002": "0x0000000000000000000000000000000000000000000000000000000000000e10"`)

	path := filepath.Join(t.TempDir(), "alloc.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := ReadAlloc(path)
	require.NoError(t, err)
	require.Contains(t, loaded, testTimelock)
	assert.Equal(t, alloc[testTimelock].Storage, loaded[testTimelock].Storage)
	assert.Equal(t, testCode, loaded[testTimelock].Code)
}

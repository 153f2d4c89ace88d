// Package genesis assembles genesis allocation entries for predeployed contracts.
package genesis

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/timelock"
)

// Contract is a predeployed account.
type Contract struct {
	Name    string
	Address common.Address
	Code    []byte
	Balance *big.Int
	Storage map[common.Hash]common.Hash
}

// Account converts c into a go-ethereum genesis account.
func (c Contract) Account() types.Account {
	balance := c.Balance
	if balance == nil {
		balance = new(big.Int)
	}
	acc := types.Account{
		Code:    common.CopyBytes(c.Code),
		Balance: new(big.Int).Set(balance),
	}
	if len(c.Storage) > 0 {
		acc.Storage = make(map[common.Hash]common.Hash, len(c.Storage))
		for k, v := range c.Storage {
			acc.Storage[k] = v
		}
	}
	return acc
}

// TimelockContract predeploys a timelock at in.Timelock with the storage its constructor
// would have left behind under layout.
func TimelockContract(layout timelock.Layout, in timelock.Input, code []byte) (Contract, error) {
	storage, err := timelock.Simulate(layout, in)
	if err != nil {
		return Contract{}, fmt.Errorf("simulate timelock storage: %w", err)
	}
	return Contract{
		Name:    "PolygonZkEVMTimelock",
		Address: in.Timelock,
		Code:    code,
		Storage: storage,
	}, nil
}

// NewAlloc returns a copy of base extended with contracts. An address may appear only once.
func NewAlloc(base types.GenesisAlloc, contracts ...Contract) (types.GenesisAlloc, error) {
	alloc := make(types.GenesisAlloc, len(base)+len(contracts))
	for addr, acc := range base {
		alloc[addr] = acc
	}
	for _, c := range contracts {
		if _, ok := alloc[c.Address]; ok {
			return nil, fmt.Errorf("duplicate genesis account %s (%s)", c.Address.Hex(), c.Name)
		}
		alloc[c.Address] = c.Account()
	}
	return alloc, nil
}

// ReadAlloc loads a genesis allocation from a JSON file.
func ReadAlloc(path string) (types.GenesisAlloc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alloc %s: %w", path, err)
	}
	var alloc types.GenesisAlloc
	if err := json.Unmarshal(data, &alloc); err != nil {
		return nil, fmt.Errorf("decode alloc %s: %w", path, err)
	}
	return alloc, nil
}

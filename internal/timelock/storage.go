package timelock

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/ethereum"
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// StorageSlotMap maps storage slots to their values. It marshals to
// {"0x<64 hex>": "0x<64 hex>"} with sorted keys.
type StorageSlotMap map[common.Hash]common.Hash

// Input holds the constructor arguments of the timelock being simulated.
type Input struct {
	MinDelay *big.Int
	Admin    common.Address
	Timelock common.Address
}

var trueWord = common.BigToHash(common.Big1)

// RoleSlot is the base slot of role's entry in the roles mapping at base.
func RoleSlot(role common.Hash, base common.Hash) common.Hash {
	return crypto.Keccak256Hash(role[:], base[:])
}

// RoleAdminSlot is the slot holding the admin role of role, one past its base slot.
func RoleAdminSlot(role common.Hash, base common.Hash) common.Hash {
	roleSlot := RoleSlot(role, base)
	// Wraps modulo 2^256 like the EVM does.
	slot := new(uint256.Int).SetBytes32(roleSlot[:])
	slot.AddUint64(slot, 1)
	return common.Hash(slot.Bytes32())
}

// MemberSlot is the slot of the membership flag of account in role.
func MemberSlot(role common.Hash, account common.Address, base common.Hash) common.Hash {
	roleSlot := RoleSlot(role, base)
	return crypto.Keccak256Hash(common.LeftPadBytes(account.Bytes(), 32), roleSlot[:])
}

// Simulate returns the storage a timelock built with in holds right after construction.
// Zero values are omitted since they equal unset storage. On error no map is returned.
func Simulate(layout Layout, in Input) (StorageSlotMap, error) {
	minDelay, ok := ethereum.Word32(in.MinDelay)
	if !ok {
		return nil, pkgerrors.NewFieldOverflowError("minDelay", 256)
	}
	if !layout.hasRole(layout.AdminRole) {
		return nil, pkgerrors.ErrInvalidLayout.WithDetails(fmt.Sprintf("admin role %s not declared", layout.AdminRole.Name))
	}

	storage := make(StorageSlotMap)
	set := func(slot, value common.Hash) {
		if value != (common.Hash{}) {
			storage[slot] = value
		}
	}

	for _, ra := range layout.RoleAdmins {
		if !layout.hasRole(ra.Role) || !layout.hasRole(ra.Admin) {
			return nil, pkgerrors.ErrInvalidLayout.WithDetails(fmt.Sprintf("role admin %s -> %s references undeclared role", ra.Role.Name, ra.Admin.Name))
		}
		set(RoleAdminSlot(ra.Role.ID, layout.RolesMappingSlot), ra.Admin.ID)
	}

	for _, g := range layout.Grants {
		if !layout.hasRole(g.Role) {
			return nil, pkgerrors.ErrInvalidLayout.WithDetails(fmt.Sprintf("grant of undeclared role %s", g.Role.Name))
		}
		var account common.Address
		switch g.Grantee {
		case GranteeTimelock:
			account = in.Timelock
		case GranteeAdmin:
			account = in.Admin
		default:
			return nil, pkgerrors.ErrInvalidLayout.WithDetails(fmt.Sprintf("unknown grantee %q", g.Grantee))
		}
		if g.SkipZero && account == (common.Address{}) {
			continue
		}
		set(MemberSlot(g.Role.ID, account, layout.RolesMappingSlot), trueWord)
	}

	set(layout.MinDelaySlot, common.Hash(minDelay))
	return storage, nil
}

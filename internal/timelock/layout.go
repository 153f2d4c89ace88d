// Package timelock predicts the persistent storage of a freshly constructed
// access-control timelock so it can be embedded in a genesis description.
package timelock

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Role is an access-control role identifier.
type Role struct {
	Name string      `json:"name"`
	ID   common.Hash `json:"id"`
}

// NamedRole returns the role whose identifier is keccak256(name).
func NamedRole(name string) Role {
	return Role{Name: name, ID: crypto.Keccak256Hash([]byte(name))}
}

// Well-known timelock roles.
var (
	TimelockAdminRole = NamedRole("TIMELOCK_ADMIN_ROLE")
	ProposerRole      = NamedRole("PROPOSER_ROLE")
	ExecutorRole      = NamedRole("EXECUTOR_ROLE")
	CancellerRole     = NamedRole("CANCELLER_ROLE")
	DefaultAdminRole  = Role{Name: "DEFAULT_ADMIN_ROLE"}
)

// Grantee names who receives a role during construction.
type Grantee string

const (
	// GranteeTimelock is the timelock contract itself.
	GranteeTimelock Grantee = "timelock"
	// GranteeAdmin is the admin address passed to the constructor.
	GranteeAdmin Grantee = "admin"
)

// RoleAdmin records that Admin administers Role.
type RoleAdmin struct {
	Role  Role `json:"role"`
	Admin Role `json:"admin"`
}

// Grant is one role membership written by the constructor.
type Grant struct {
	Role    Role    `json:"role"`
	Grantee Grantee `json:"grantee"`
	// SkipZero drops the grant when the grantee resolves to the zero address.
	SkipZero bool `json:"skipZero,omitempty"`
}

// Layout is the complete set of storage assumptions for one timelock implementation.
// A change in the contract's storage layout needs a new Layout, not an edit.
type Layout struct {
	Version          string      `json:"version"`
	RolesMappingSlot common.Hash `json:"rolesMappingSlot"`
	MinDelaySlot     common.Hash `json:"minDelaySlot"`
	AdminRole        Role        `json:"adminRole"`
	Roles            []Role      `json:"roles"`
	RoleAdmins       []RoleAdmin `json:"roleAdmins"`
	Grants           []Grant     `json:"grants"`
}

// LayoutOZv4 matches the OpenZeppelin 4.x TimelockController: every role is
// administered by TIMELOCK_ADMIN_ROLE, _roles sits at slot 0 and _minDelay at slot 2.
var LayoutOZv4 = Layout{
	Version:          "oz-timelock-v4",
	RolesMappingSlot: common.BigToHash(common.Big0),
	MinDelaySlot:     common.BigToHash(common.Big2),
	AdminRole:        TimelockAdminRole,
	Roles:            []Role{TimelockAdminRole, ProposerRole, ExecutorRole, CancellerRole},
	RoleAdmins: []RoleAdmin{
		{Role: TimelockAdminRole, Admin: TimelockAdminRole},
		{Role: ProposerRole, Admin: TimelockAdminRole},
		{Role: ExecutorRole, Admin: TimelockAdminRole},
		{Role: CancellerRole, Admin: TimelockAdminRole},
	},
	Grants: []Grant{
		{Role: TimelockAdminRole, Grantee: GranteeTimelock},
		{Role: TimelockAdminRole, Grantee: GranteeAdmin, SkipZero: true},
		{Role: ProposerRole, Grantee: GranteeAdmin},
		{Role: CancellerRole, Grantee: GranteeAdmin},
		{Role: ExecutorRole, Grantee: GranteeAdmin},
	},
}

// LayoutOZv5 matches the OpenZeppelin 5.x TimelockController, where the admin role is
// DEFAULT_ADMIN_ROLE (zero) and no role admins are written.
var LayoutOZv5 = Layout{
	Version:          "oz-timelock-v5",
	RolesMappingSlot: common.BigToHash(common.Big0),
	MinDelaySlot:     common.BigToHash(common.Big2),
	AdminRole:        DefaultAdminRole,
	Roles:            []Role{DefaultAdminRole, ProposerRole, ExecutorRole, CancellerRole},
	Grants: []Grant{
		{Role: DefaultAdminRole, Grantee: GranteeTimelock},
		{Role: DefaultAdminRole, Grantee: GranteeAdmin, SkipZero: true},
		{Role: ProposerRole, Grantee: GranteeAdmin},
		{Role: CancellerRole, Grantee: GranteeAdmin},
		{Role: ExecutorRole, Grantee: GranteeAdmin},
	},
}

// Layouts lists the supported layouts by version.
var Layouts = map[string]Layout{
	LayoutOZv4.Version: LayoutOZv4,
	LayoutOZv5.Version: LayoutOZv5,
}

func (l Layout) hasRole(r Role) bool {
	for _, known := range l.Roles {
		if known == r {
			return true
		}
	}
	return false
}

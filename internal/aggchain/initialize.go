package aggchain

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/ethereum"
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

// InitVersion identifies which initializer schema a payload targets.
type InitVersion uint8

const (
	// InitVersion0 is the first-time bootstrap carrying the full parameter set.
	InitVersion0 InitVersion = 0
	// InitVersion1 re-binds an already bootstrapped unit after an upgrade.
	InitVersion1 InitVersion = 1
)

// InitPayload is one of ECDSAInitV0, FEPInitV0 or InitV1. The set is closed: the
// variants share no fields beyond the gateway binding, so a re-initialization can
// never carry administrative fields.
type InitPayload interface {
	AggchainType() AggchainType
	Version() InitVersion
	arguments() abi.Arguments
	values() ([]any, error)
}

// Bootstrap holds the administrative fields set once by a version 0 payload.
type Bootstrap struct {
	Admin               common.Address `json:"admin"`
	TrustedSequencer    common.Address `json:"trustedSequencer"`
	GasTokenAddress     common.Address `json:"gasTokenAddress"`
	TrustedSequencerURL string         `json:"trustedSequencerURL"`
	NetworkName         string         `json:"networkName"`
}

// GatewayBinding selects between the gateway default keys and the unit's own keys.
// OwnedVKeys[i] is routed by Selectors[i].
type GatewayBinding struct {
	UseDefaultGateway bool              `json:"useDefaultGateway"`
	OwnedVKeys        []VerificationKey `json:"ownedAggchainVKeys"`
	Selectors         []Selector        `json:"aggchainVKeySelectors"`
	VKeyManager       common.Address    `json:"vKeyManager"`
}

// ECDSAInitV0 bootstraps a signature-flavor unit.
type ECDSAInitV0 struct {
	Bootstrap
	Gateway GatewayBinding `json:"gateway"`
}

// FEPInitV0 bootstraps a fault-proof unit from its starting output root.
type FEPInitV0 struct {
	Bootstrap
	Gateway             GatewayBinding `json:"gateway"`
	AggregationVKey     common.Hash    `json:"aggregationVkey"`
	RollupConfigHash    common.Hash    `json:"rollupConfigHash"`
	RangeVKeyCommitment common.Hash    `json:"rangeVkeyCommitment"`
	StartingOutputRoot  common.Hash    `json:"startingOutputRoot"`
	StartingTimestamp   *big.Int       `json:"startingTimestamp"`
	StartingBlockNumber *big.Int       `json:"startingBlockNumber"`
}

// InitV1 re-binds a unit of either flavor to a new key manager and gateway setting.
type InitV1 struct {
	Type    AggchainType   `json:"-"`
	Gateway GatewayBinding `json:"gateway"`
}

var (
	addressT    = mustNewType("address")
	stringT     = mustNewType("string")
	boolT       = mustNewType("bool")
	bytes32T    = mustNewType("bytes32")
	bytes32ArrT = mustNewType("bytes32[]")
	bytes4ArrT  = mustNewType("bytes4[]")
	uint256T    = mustNewType("uint256")

	ecdsaV0Args = bootstrapArguments()
	fepV0Args   = append(bootstrapArguments(), fepArguments()...)
	initV1Args  = gatewayArguments()
)

var (
	_ InitPayload = (*ECDSAInitV0)(nil)
	_ InitPayload = (*FEPInitV0)(nil)
	_ InitPayload = (*InitV1)(nil)
)

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("abi type %s: %v", t, err))
	}
	return typ
}

func bootstrapArguments() abi.Arguments {
	args := abi.Arguments{
		{Name: "admin", Type: addressT},
		{Name: "trustedSequencer", Type: addressT},
		{Name: "gasTokenAddress", Type: addressT},
		{Name: "trustedSequencerURL", Type: stringT},
		{Name: "networkName", Type: stringT},
	}
	return append(args, gatewayArguments()...)
}

func gatewayArguments() abi.Arguments {
	return abi.Arguments{
		{Name: "useDefaultGateway", Type: boolT},
		{Name: "ownedAggchainVKeys", Type: bytes32ArrT},
		{Name: "aggchainVKeySelectors", Type: bytes4ArrT},
		{Name: "vKeyManager", Type: addressT},
	}
}

func fepArguments() abi.Arguments {
	return abi.Arguments{
		{Name: "aggregationVkey", Type: bytes32T},
		{Name: "rollupConfigHash", Type: bytes32T},
		{Name: "rangeVkeyCommitment", Type: bytes32T},
		{Name: "startingOutputRoot", Type: bytes32T},
		{Name: "startingTimestamp", Type: uint256T},
		{Name: "startingBlockNumber", Type: uint256T},
	}
}

// EncodeInit ABI-encodes p for the unit's one-shot initializer. It has no side effects.
func EncodeInit(p InitPayload) ([]byte, error) {
	if p == nil {
		return nil, pkgerrors.NewUnsupportedFlavorError("init payload", nil)
	}
	if t := p.AggchainType(); !t.Valid() {
		return nil, pkgerrors.NewUnsupportedFlavorError("aggchain type", t.String())
	}
	vals, err := p.values()
	if err != nil {
		return nil, err
	}
	data, err := p.arguments().Pack(vals...)
	if err != nil {
		return nil, fmt.Errorf("pack init v%d payload: %w", p.Version(), err)
	}
	return data, nil
}

// AggchainType implements InitPayload.
func (p *ECDSAInitV0) AggchainType() AggchainType { return AggchainTypeECDSA }

// Version implements InitPayload.
func (p *ECDSAInitV0) Version() InitVersion { return InitVersion0 }

func (p *ECDSAInitV0) arguments() abi.Arguments { return ecdsaV0Args }

func (p *ECDSAInitV0) values() ([]any, error) {
	gw, err := p.Gateway.values(AggchainTypeECDSA)
	if err != nil {
		return nil, err
	}
	return append(p.Bootstrap.values(), gw...), nil
}

// AggchainType implements InitPayload.
func (p *FEPInitV0) AggchainType() AggchainType { return AggchainTypeFEP }

// Version implements InitPayload.
func (p *FEPInitV0) Version() InitVersion { return InitVersion0 }

func (p *FEPInitV0) arguments() abi.Arguments { return fepV0Args }

func (p *FEPInitV0) values() ([]any, error) {
	gw, err := p.Gateway.values(AggchainTypeFEP)
	if err != nil {
		return nil, err
	}
	timestamp, ok := ethereum.ToUint256(p.StartingTimestamp)
	if !ok {
		return nil, pkgerrors.NewFieldOverflowError("startingTimestamp", 256)
	}
	blockNumber, ok := ethereum.ToUint256(p.StartingBlockNumber)
	if !ok {
		return nil, pkgerrors.NewFieldOverflowError("startingBlockNumber", 256)
	}
	vals := append(p.Bootstrap.values(), gw...)
	return append(vals,
		[32]byte(p.AggregationVKey),
		[32]byte(p.RollupConfigHash),
		[32]byte(p.RangeVKeyCommitment),
		[32]byte(p.StartingOutputRoot),
		timestamp.ToBig(),
		blockNumber.ToBig(),
	), nil
}

// AggchainType implements InitPayload.
func (p *InitV1) AggchainType() AggchainType { return p.Type }

// Version implements InitPayload.
func (p *InitV1) Version() InitVersion { return InitVersion1 }

func (p *InitV1) arguments() abi.Arguments { return initV1Args }

func (p *InitV1) values() ([]any, error) {
	return p.Gateway.values(p.Type)
}

func (b Bootstrap) values() []any {
	return []any{
		b.Admin,
		b.TrustedSequencer,
		b.GasTokenAddress,
		b.TrustedSequencerURL,
		b.NetworkName,
	}
}

func (g GatewayBinding) values(t AggchainType) ([]any, error) {
	if len(g.Selectors) != len(g.OwnedVKeys) {
		return nil, pkgerrors.NewLengthMismatchError(len(g.Selectors), len(g.OwnedVKeys))
	}
	keys := make([][32]byte, len(g.OwnedVKeys))
	for i, k := range g.OwnedVKeys {
		keys[i] = k
	}
	selectors := make([][4]byte, len(g.Selectors))
	for i, s := range g.Selectors {
		if s.AggchainType() != t {
			return nil, pkgerrors.NewUnsupportedFlavorError("selector aggchain type", map[string]string{
				"selector": s.String(),
				"want":     t.String(),
			})
		}
		selectors[i] = s
	}
	return []any{g.UseDefaultGateway, keys, selectors, g.VKeyManager}, nil
}

// DecodeECDSAInitV0 decodes data strictly under the signature-flavor version 0 schema.
func DecodeECDSAInitV0(data []byte) (*ECDSAInitV0, error) {
	vals, err := unpack(ecdsaV0Args, data)
	if err != nil {
		return nil, err
	}
	d := valueDecoder{vals: vals}
	p := &ECDSAInitV0{
		Bootstrap: d.bootstrap(),
		Gateway:   d.gateway(),
	}
	if err := d.finish(p, data); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeFEPInitV0 decodes data strictly under the fault-proof version 0 schema.
func DecodeFEPInitV0(data []byte) (*FEPInitV0, error) {
	vals, err := unpack(fepV0Args, data)
	if err != nil {
		return nil, err
	}
	d := valueDecoder{vals: vals}
	p := &FEPInitV0{
		Bootstrap: d.bootstrap(),
		Gateway:   d.gateway(),
	}
	p.AggregationVKey = d.hash()
	p.RollupConfigHash = d.hash()
	p.RangeVKeyCommitment = d.hash()
	p.StartingOutputRoot = d.hash()
	p.StartingTimestamp = d.bigInt()
	p.StartingBlockNumber = d.bigInt()
	if err := d.finish(p, data); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeInitV1 decodes data strictly under the version 1 schema for aggchain type t.
func DecodeInitV1(t AggchainType, data []byte) (*InitV1, error) {
	if !t.Valid() {
		return nil, pkgerrors.NewUnsupportedFlavorError("aggchain type", t.String())
	}
	vals, err := unpack(initV1Args, data)
	if err != nil {
		return nil, err
	}
	d := valueDecoder{vals: vals}
	p := &InitV1{Type: t, Gateway: d.gateway()}
	if err := d.finish(p, data); err != nil {
		return nil, err
	}
	return p, nil
}

func unpack(args abi.Arguments, data []byte) ([]any, error) {
	vals, err := args.Unpack(data)
	if err != nil {
		return nil, pkgerrors.ErrSchemaMismatch.WithDetails(err.Error())
	}
	return vals, nil
}

// valueDecoder walks unpacked ABI values in argument order. The first type
// mismatch is remembered and reported by finish.
type valueDecoder struct {
	vals []any
	pos  int
	err  error
}

func (d *valueDecoder) next() any {
	if d.pos >= len(d.vals) {
		d.fail("missing value")
		return nil
	}
	v := d.vals[d.pos]
	d.pos++
	return v
}

func (d *valueDecoder) fail(msg string) {
	if d.err == nil {
		d.err = pkgerrors.ErrSchemaMismatch.WithDetails(fmt.Sprintf("argument %d: %s", d.pos, msg))
	}
}

func (d *valueDecoder) address() common.Address {
	v, ok := d.next().(common.Address)
	if !ok {
		d.fail("not an address")
	}
	return v
}

func (d *valueDecoder) str() string {
	v, ok := d.next().(string)
	if !ok {
		d.fail("not a string")
	}
	return v
}

func (d *valueDecoder) boolean() bool {
	v, ok := d.next().(bool)
	if !ok {
		d.fail("not a bool")
	}
	return v
}

func (d *valueDecoder) hash() common.Hash {
	v, ok := d.next().([32]byte)
	if !ok {
		d.fail("not a bytes32")
	}
	return common.Hash(v)
}

func (d *valueDecoder) bigInt() *big.Int {
	v, ok := d.next().(*big.Int)
	if !ok {
		d.fail("not a uint256")
	}
	return v
}

func (d *valueDecoder) bootstrap() Bootstrap {
	return Bootstrap{
		Admin:               d.address(),
		TrustedSequencer:    d.address(),
		GasTokenAddress:     d.address(),
		TrustedSequencerURL: d.str(),
		NetworkName:         d.str(),
	}
}

func (d *valueDecoder) gateway() GatewayBinding {
	g := GatewayBinding{UseDefaultGateway: d.boolean()}

	keys, ok := d.next().([][32]byte)
	if !ok {
		d.fail("not a bytes32[]")
	}
	g.OwnedVKeys = make([]VerificationKey, len(keys))
	for i, k := range keys {
		g.OwnedVKeys[i] = k
	}

	selectors, ok := d.next().([][4]byte)
	if !ok {
		d.fail("not a bytes4[]")
	}
	g.Selectors = make([]Selector, len(selectors))
	for i, s := range selectors {
		g.Selectors[i] = s
	}

	g.VKeyManager = d.address()
	return g
}

// finish rejects decodes that left values unread or that do not re-encode to the
// original bytes, so a payload only decodes under the schema that produced it.
func (d *valueDecoder) finish(p InitPayload, data []byte) error {
	if d.err != nil {
		return d.err
	}
	if d.pos != len(d.vals) {
		return pkgerrors.ErrSchemaMismatch.WithDetails("trailing values")
	}
	reencoded, err := EncodeInit(p)
	if err != nil {
		return err
	}
	if !bytes.Equal(reencoded, data) {
		return pkgerrors.ErrSchemaMismatch.WithDetails(fmt.Sprintf("non-canonical v%d encoding", p.Version()))
	}
	return nil
}

package layout

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Ledger PDA seeds per farm program version.
const (
	ledgerSeedV3V5 = "staker_info_v2_associated_seed"
	ledgerSeedV6   = "farmer_info_associated_seed"
)

// FarmLedgerV3 is the user stake ledger for v3 farms.
type FarmLedgerV3 struct {
	State       uint64
	ID          solana.PublicKey
	Owner       solana.PublicKey
	Deposited   uint64
	RewardDebts [1]uint64
}

// FarmLedgerV5 is the user stake ledger for v5 farms (two reward debts).
type FarmLedgerV5 struct {
	State       uint64
	ID          solana.PublicKey
	Owner       solana.PublicKey
	Deposited   uint64
	RewardDebts [2]uint64
}

// FarmLedgerV6 is the user stake ledger for v6 farms.
type FarmLedgerV6 struct {
	Discriminator [8]byte
	State         uint64
	ID            solana.PublicKey
	Owner         solana.PublicKey
	Deposited     uint64
	RewardDebts   [6]bin.Uint128
}

// Ledger is a decoded stake ledger in version-neutral form.
type Ledger struct {
	Owner     solana.PublicKey
	Deposited uint64 // raw LP amount staked by the owner
}

// DecodeLedger decodes a stake ledger account for the given farm version.
func DecodeLedger(version int, data []byte) (*Ledger, error) {
	switch version {
	case 3:
		var l FarmLedgerV3
		if err := bin.NewBinDecoder(data).Decode(&l); err != nil {
			return nil, fmt.Errorf("decode farm ledger v3: %w", err)
		}
		return &Ledger{Owner: l.Owner, Deposited: l.Deposited}, nil
	case 5:
		var l FarmLedgerV5
		if err := bin.NewBinDecoder(data).Decode(&l); err != nil {
			return nil, fmt.Errorf("decode farm ledger v5: %w", err)
		}
		return &Ledger{Owner: l.Owner, Deposited: l.Deposited}, nil
	case 6:
		var l FarmLedgerV6
		if err := bin.NewBinDecoder(data).Decode(&l); err != nil {
			return nil, fmt.Errorf("decode farm ledger v6: %w", err)
		}
		return &Ledger{Owner: l.Owner, Deposited: l.Deposited}, nil
	default:
		return nil, fmt.Errorf("unsupported farm version %d", version)
	}
}

// LedgerAddress derives the stake ledger PDA for a wallet on a farm.
func LedgerAddress(version int, programID, farmID, owner solana.PublicKey) (solana.PublicKey, error) {
	var seeds [][]byte
	if version == 6 {
		seeds = [][]byte{[]byte(ledgerSeedV6), farmID.Bytes(), owner.Bytes()}
	} else {
		seeds = [][]byte{farmID.Bytes(), owner.Bytes(), []byte(ledgerSeedV3V5)}
	}

	addr, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive ledger address: %w", err)
	}
	return addr, nil
}

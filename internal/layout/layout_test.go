package layout

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

func encode(t *testing.T, v interface{}) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := bin.NewBinEncoder(buf).Encode(v); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func pk(b byte) solana.PublicKey {
	var key solana.PublicKey
	for i := range key {
		key[i] = b
	}
	return key
}

func TestDecodeTokenAccount(t *testing.T) {
	src := TokenAccount{
		Mint:   pk(1),
		Owner:  pk(2),
		Amount: 123_456_789,
	}
	data := encode(t, &src)
	if len(data) != TokenAccountSize {
		t.Fatalf("token account layout is %d bytes, want %d", len(data), TokenAccountSize)
	}

	acc, err := DecodeTokenAccount(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if acc.Mint != src.Mint || acc.Owner != src.Owner || acc.Amount != src.Amount {
		t.Errorf("decoded %+v", acc)
	}
}

func TestDecodeTokenAccount_TooShort(t *testing.T) {
	if _, err := DecodeTokenAccount(make([]byte, 100)); err == nil {
		t.Error("expected error for truncated data")
	}
}

func TestDecodeLiquidityStateV4(t *testing.T) {
	src := LiquidityStateV4{
		Status:           6,
		BaseDecimal:      9,
		QuoteDecimal:     6,
		BaseNeedTakePnl:  11,
		QuoteNeedTakePnl: 7,
		BaseVault:        pk(3),
		QuoteVault:       pk(4),
		LpMint:           pk(5),
		OpenOrders:       pk(6),
		LpReserve:        42_000_000,
	}
	data := encode(t, &src)

	state, err := DecodeLiquidityStateV4(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.BaseDecimal != 9 || state.QuoteDecimal != 6 {
		t.Errorf("decimals %d/%d", state.BaseDecimal, state.QuoteDecimal)
	}
	if state.BaseVault != src.BaseVault || state.OpenOrders != src.OpenOrders {
		t.Errorf("keys did not survive: %+v", state)
	}
	if state.LpReserve != 42_000_000 {
		t.Errorf("lp reserve %d", state.LpReserve)
	}
}

func TestDecodeOpenOrders(t *testing.T) {
	src := OpenOrders{
		SerumPadding:    [5]byte{'s', 'e', 'r', 'u', 'm'},
		Market:          pk(7),
		BaseTokenTotal:  1000,
		QuoteTokenTotal: 2500,
	}
	// Serum pads the real account well past the prefix; the decoder
	// must tolerate trailing bytes.
	data := append(encode(t, &src), make([]byte, 64)...)

	oo, err := DecodeOpenOrders(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if oo.BaseTokenTotal != 1000 || oo.QuoteTokenTotal != 2500 {
		t.Errorf("totals %d/%d", oo.BaseTokenTotal, oo.QuoteTokenTotal)
	}
}

func TestDecodeFarmStateV3(t *testing.T) {
	src := FarmStateV3{
		RewardVault:    pk(8),
		RewardPerBlock: 77,
	}

	state, err := DecodeFarmState(3, encode(t, &src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Version != 3 || len(state.Rewards) != 1 {
		t.Fatalf("got %+v", state)
	}
	if state.Rewards[0].PerSlot != 77 || state.Rewards[0].Vault != pk(8) {
		t.Errorf("reward %+v", state.Rewards[0])
	}
	if !state.Rewards[0].Mint.IsZero() {
		t.Error("v3 reward mint should be zero, it comes from the static list")
	}
}

func TestDecodeFarmStateV5(t *testing.T) {
	src := FarmStateV5{
		RewardVaultA:    pk(9),
		PerBlockRewardA: 11,
		RewardVaultB:    pk(10),
		PerBlockRewardB: 22,
	}

	state, err := DecodeFarmState(5, encode(t, &src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Rewards) != 2 {
		t.Fatalf("got %d rewards", len(state.Rewards))
	}
	if state.Rewards[0].PerSlot != 11 || state.Rewards[1].PerSlot != 22 {
		t.Errorf("rewards %+v", state.Rewards)
	}
}

func TestDecodeFarmStateV6(t *testing.T) {
	src := FarmStateV6{
		ValidRewardTokenNum: 2,
	}
	src.RewardInfos[0] = FarmStateV6Reward{
		OpenTime:        1_700_000_000,
		EndTime:         1_710_000_000,
		RewardPerSecond: 5,
		RewardMint:      pk(11),
		RewardVault:     pk(12),
	}
	src.RewardInfos[1] = FarmStateV6Reward{RewardPerSecond: 9, RewardMint: pk(13)}
	src.RewardInfos[2] = FarmStateV6Reward{RewardPerSecond: 99} // beyond ValidRewardTokenNum

	state, err := DecodeFarmState(6, encode(t, &src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Rewards) != 2 {
		t.Fatalf("got %d rewards, want ValidRewardTokenNum", len(state.Rewards))
	}
	r := state.Rewards[0]
	if r.Mint != pk(11) || r.OpenTime != 1_700_000_000 || r.EndTime != 1_710_000_000 || r.PerSecond != 5 {
		t.Errorf("reward %+v", r)
	}
}

func TestDecodeFarmState_UnsupportedVersion(t *testing.T) {
	if _, err := DecodeFarmState(4, nil); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestDecodeLedger(t *testing.T) {
	for _, version := range []int{3, 5, 6} {
		var src interface{}
		switch version {
		case 3:
			src = &FarmLedgerV3{Owner: pk(20), Deposited: 500}
		case 5:
			src = &FarmLedgerV5{Owner: pk(20), Deposited: 500}
		case 6:
			src = &FarmLedgerV6{Owner: pk(20), Deposited: 500}
		}

		ledger, err := DecodeLedger(version, encode(t, src))
		if err != nil {
			t.Fatalf("v%d decode: %v", version, err)
		}
		if ledger.Owner != pk(20) || ledger.Deposited != 500 {
			t.Errorf("v%d ledger %+v", version, ledger)
		}
	}
}

func TestLedgerAddress(t *testing.T) {
	program := solana.MustPublicKeyFromBase58("EhhTKczWMGQt46ynNeRX1WfeagwwJd7ufHvCDjRxjo5Q")
	farm := pk(30)
	owner := pk(31)

	v3, err := LedgerAddress(3, program, farm, owner)
	if err != nil {
		t.Fatalf("v3: %v", err)
	}
	v5, err := LedgerAddress(5, program, farm, owner)
	if err != nil {
		t.Fatalf("v5: %v", err)
	}
	v6, err := LedgerAddress(6, program, farm, owner)
	if err != nil {
		t.Fatalf("v6: %v", err)
	}

	if v3.IsZero() || v6.IsZero() {
		t.Error("derived a zero address")
	}
	// v3 and v5 share the same seed layout; v6 uses its own.
	if v3 != v5 {
		t.Errorf("v3 %s and v5 %s should match", v3, v5)
	}
	if v3 == v6 {
		t.Error("v3 and v6 derivations should differ")
	}
}

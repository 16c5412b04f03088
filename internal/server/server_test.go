package server

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"raydium-farm-server/internal/domain"
	"raydium-farm-server/internal/liquidity"
	"raydium-farm-server/internal/raydium"
)

type statusStub struct {
	report *domain.StatusReport
	err    error

	gotPair, gotWallet string
	gotPool, gotFarm   bool
}

func (s *statusStub) Status(_ context.Context, pair, wallet string, includePool, includeFarm bool) (*domain.StatusReport, error) {
	s.gotPair, s.gotWallet = pair, wallet
	s.gotPool, s.gotFarm = includePool, includeFarm
	return s.report, s.err
}

type marketStub struct {
	snap *raydium.Snapshot
	err  error
}

func (m *marketStub) FetchSnapshot(context.Context) (*raydium.Snapshot, error) {
	return m.snap, m.err
}

type submitterStub struct {
	result *liquidity.Result
	err    error
	got    *liquidity.Request
}

func (s *submitterStub) AddLiquidity(_ context.Context, req liquidity.Request) (*liquidity.Result, error) {
	s.got = &req
	return s.result, s.err
}

func testSnapshot() *raydium.Snapshot {
	return &raydium.Snapshot{
		Tokens: domain.NewTokenTable([]domain.TokenInfo{
			{Symbol: "RAY", Mint: "mint-ray", Decimals: 6},
			{Symbol: "USDC", Mint: "mint-usdc", Decimals: 6},
		}),
		Liquidity: []domain.LiquidityInfo{
			{ID: "pool-1", BaseMint: "mint-ray", QuoteMint: "mint-usdc", LpMint: "lp-1"},
		},
	}
}

func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRoot(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{}, &submitterStub{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "0" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGetStatus_Success(t *testing.T) {
	st := &statusStub{report: &domain.StatusReport{
		WalletBalance: 2.5,
		PairAddress:   "pool-1",
		Pool:          struct{}{},
		Farm:          struct{}{},
	}}
	srv := New(st, &marketStub{}, &submitterStub{})

	rec := post(t, srv.Handler(), "/getStatus",
		`{"wallet": "w", "pair": "RAY-USDC", "method": "getStatus", "pool": "1", "farm": "0"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	if string(body["pairAddress"]) != `"pool-1"` {
		t.Errorf("pairAddress %s", body["pairAddress"])
	}
	if string(body["pool"]) != "{}" || string(body["farm"]) != "{}" {
		t.Errorf("sections %s / %s", body["pool"], body["farm"])
	}

	if st.gotPair != "RAY-USDC" || st.gotWallet != "w" {
		t.Errorf("backend saw %q/%q", st.gotPair, st.gotWallet)
	}
	// "1" toggles a section on, anything else leaves it off.
	if !st.gotPool || st.gotFarm {
		t.Errorf("toggles pool=%v farm=%v", st.gotPool, st.gotFarm)
	}
}

func TestGetStatus_MissingField(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{}, &submitterStub{})

	bodies := []string{
		`{"pair": "RAY-USDC", "method": "getStatus", "pool": "1", "farm": "1"}`, // no wallet
		`{"wallet": "w", "method": "getStatus", "pool": "1", "farm": "1"}`,      // no pair
		`{"wallet": "w", "pair": "RAY-USDC", "pool": "1", "farm": "1"}`,         // no method
		`{"wallet": "w", "pair": "RAY-USDC", "method": "getStatus", "farm": "1"}`,
		`{"wallet": "w", "pair": "RAY-USDC", "method": "getStatus", "pool": "1"}`,
		`not json`,
	}

	for _, body := range bodies {
		rec := post(t, srv.Handler(), "/getStatus", body)
		if rec.Code != http.StatusOK || rec.Body.String() != "-100" {
			t.Errorf("body %q: got %d %q", body, rec.Code, rec.Body.String())
		}
	}
}

func TestGetStatus_BackendFailure(t *testing.T) {
	srv := New(&statusStub{err: errors.New("chain unavailable")}, &marketStub{}, &submitterStub{})

	rec := post(t, srv.Handler(), "/getStatus",
		`{"wallet": "w", "pair": "RAY-USDC", "method": "getStatus", "pool": "1", "farm": "1"}`)

	if rec.Code != http.StatusOK || rec.Body.String() != "-200" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func validAddLiquidityBody() string {
	key := hex.EncodeToString(solana.NewWallet().PrivateKey)
	return `{"privateKey": "` + key + `", "pair": "RAY-USDC", "isBase": "1",
		"amount": "10.5", "numerator": "1", "denominator": "100"}`
}

func TestAddLiquidity_Success(t *testing.T) {
	sub := &submitterStub{result: &liquidity.Result{
		TxIDs:       []string{"sig-1"},
		OtherAmount: decimal.NewFromInt(5),
	}}
	srv := New(&statusStub{}, &marketStub{snap: testSnapshot()}, sub)

	rec := post(t, srv.Handler(), "/addLiquidity", validAddLiquidityBody())

	// Success responds 200 with no body.
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}

	if sub.got == nil {
		t.Fatal("submitter not called")
	}
	if sub.got.Pool.Liquidity.ID != "pool-1" {
		t.Errorf("resolved pool %q", sub.got.Pool.Liquidity.ID)
	}
	if !sub.got.BaseSide || sub.got.Amount != 10.5 {
		t.Errorf("request %+v", sub.got)
	}
	if sub.got.SlippageNumerator != 1 || sub.got.SlippageDenominator != 100 {
		t.Errorf("slippage %d/%d", sub.got.SlippageNumerator, sub.got.SlippageDenominator)
	}
}

func TestAddLiquidity_MissingField(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{snap: testSnapshot()}, &submitterStub{})

	rec := post(t, srv.Handler(), "/addLiquidity",
		`{"pair": "RAY-USDC", "isBase": "1", "amount": "10", "numerator": "1", "denominator": "100"}`)

	if rec.Body.String() != "-100" {
		t.Errorf("got %q", rec.Body.String())
	}
}

func TestAddLiquidity_BadNumbers(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{snap: testSnapshot()}, &submitterStub{})

	key := hex.EncodeToString(solana.NewWallet().PrivateKey)
	rec := post(t, srv.Handler(), "/addLiquidity",
		`{"privateKey": "`+key+`", "pair": "RAY-USDC", "isBase": "1",
		  "amount": "not-a-number", "numerator": "1", "denominator": "100"}`)

	if rec.Body.String() != "-200" {
		t.Errorf("got %q", rec.Body.String())
	}
}

func TestAddLiquidity_UnknownPair(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{snap: testSnapshot()}, &submitterStub{})

	key := hex.EncodeToString(solana.NewWallet().PrivateKey)
	rec := post(t, srv.Handler(), "/addLiquidity",
		`{"privateKey": "`+key+`", "pair": "DOGE-USDC", "isBase": "1",
		  "amount": "10", "numerator": "1", "denominator": "100"}`)

	if rec.Body.String() != "-200" {
		t.Errorf("got %q", rec.Body.String())
	}
}

func TestAddLiquidity_SubmitFailure(t *testing.T) {
	sub := &submitterStub{err: errors.New("broadcast failed")}
	srv := New(&statusStub{}, &marketStub{snap: testSnapshot()}, sub)

	rec := post(t, srv.Handler(), "/addLiquidity", validAddLiquidityBody())

	if rec.Body.String() != "-200" {
		t.Errorf("got %q", rec.Body.String())
	}
}

func TestAddLiquidity_MarketFailure(t *testing.T) {
	srv := New(&statusStub{}, &marketStub{err: errors.New("api down")}, &submitterStub{})

	rec := post(t, srv.Handler(), "/addLiquidity", validAddLiquidityBody())

	if rec.Body.String() != "-200" {
		t.Errorf("got %q", rec.Body.String())
	}
}

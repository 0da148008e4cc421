package chain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dmagro/infrared-report/internal/rpc"
	"github.com/dmagro/infrared-report/internal/stats"
)

func TestNormalizeBlock(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"", "latest", false},
		{" Latest ", "latest", false},
		{"pending", "pending", false},
		{"earliest", "earliest", false},
		{"1234567", "0x12d687", false},
		{"0x12D687", "0x12d687", false},
		{"0xzz", "", true},
		{"yesterday", "", true},
		{"-1", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeBlock(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("NormalizeBlock(%q) = %q, %v; want %q, error %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestBlockNumber(t *testing.T) {
	if blockNumber(BlockLatest) != nil || blockNumber(BlockPending) != nil {
		t.Error("latest and pending should map to nil")
	}
	if n := blockNumber(BlockEarliest); n == nil || n.Sign() != 0 {
		t.Errorf("earliest = %v, want 0", n)
	}
	if n := blockNumber("0x12d687"); n == nil || n.Cmp(big.NewInt(1234567)) != 0 {
		t.Errorf("0x12d687 = %v, want 1234567", n)
	}
}

func TestRPCQuerierAtBlock(t *testing.T) {
	var gotBlock string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotBlock, _ = req.Params[1].(string)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x0000000000000000000000000000000000000000000000000000000000000005"}`))
	}))
	defer srv.Close()

	q, closeFn, err := New(context.Background(), Options{URL: srv.URL, Timeout: time.Second, Block: "1234567"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	got, err := q.Call(context.Background(), ibgt, "totalSupply()(uint256)")
	if err != nil {
		t.Fatalf("Call() error: %v", err)
	}
	if diff := cmp.Diff([]string{"5"}, got); diff != "" {
		t.Errorf("Call() mismatch (-want +got):\n%s", diff)
	}
	if gotBlock != "0x12d687" {
		t.Errorf("block param = %q, want 0x12d687", gotBlock)
	}
}

func TestNewRejectsBadBlock(t *testing.T) {
	_, closeFn, err := New(context.Background(), Options{URL: "http://localhost:8545", Block: "soon"})
	defer closeFn()
	if err == nil {
		t.Error("New() should reject an invalid block")
	}
}

func TestCastQuerierAtBlock(t *testing.T) {
	var argv []string
	q := NewCastQuerier("/usr/bin/cast", "https://rpc.example").
		WithRunner(fakeRunner("7\n", nil, &argv)).
		AtBlock("0x10")

	if _, err := q.Call(context.Background(), ibgt, "totalSupply()(uint256)"); err != nil {
		t.Fatal(err)
	}
	want := []string{"/usr/bin/cast", "call", ibgt, "totalSupply()(uint256)", "--block", "0x10", "--rpc-url", "https://rpc.example"}
	if diff := cmp.Diff(want, argv); diff != "" {
		t.Errorf("argv mismatch (-want +got):\n%s", diff)
	}
}

type stubQuerier struct{ err error }

func (s stubQuerier) Call(context.Context, string, string, ...string) ([]string, error) {
	return []string{"1"}, s.err
}

func TestTimedRecordsCalls(t *testing.T) {
	rec := stats.NewRecorder()
	tick := time.Unix(0, 0)
	ok := NewTimed(stubQuerier{}, rec)
	ok.now = func() time.Time { tick = tick.Add(10 * time.Millisecond); return tick }
	failing := NewTimed(stubQuerier{err: errors.New("reverted")}, rec)

	for i := 0; i < 3; i++ {
		if _, err := ok.Call(context.Background(), ibgt, "totalSupply()(uint256)"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := failing.Call(context.Background(), ibgt, "symbol()(string)"); err == nil {
		t.Fatal("expected the stub error")
	}

	got := rec.Summary()
	if len(got) != 2 {
		t.Fatalf("Summary() = %+v, want two methods", got)
	}
	if got[0].Method != "totalSupply" || got[0].Calls != 3 || got[0].Max != 10*time.Millisecond {
		t.Errorf("totalSupply stats = %+v", got[0])
	}
	if got[1].Method != "symbol" || got[1].Failures != 1 {
		t.Errorf("symbol stats = %+v", got[1])
	}
}

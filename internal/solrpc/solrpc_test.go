package solrpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framp/framp-backend/internal/types/environments"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/utils/logger"
)

const (
	testWallet   = "So11111111111111111111111111111111111111112"
	testTreasury = "Vote111111111111111111111111111111111111111"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type fakeNode struct {
	mu      sync.Mutex
	calls   []rpcRequest
	results map[string]string
	errors  map[string]string
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if msg, ok := f.errors[req.Method]; ok {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"error":{"code":-32602,"message":"` + msg + `"}}`))
		return
	}
	result, ok := f.results[req.Method]
	if !ok {
		result = "null"
	}
	_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
}

func newTestRPC(t *testing.T, node *fakeNode) ISolRPC {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	cfg := &config.AppConfig{Solana: config.SolanaConfig{RPCEndpoint: srv.URL}}
	client, err := New(cfg, logger.New(environments.Test))
	require.NoError(t, err)
	return client
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(testWallet))
	assert.True(t, IsValidAddress("11111111111111111111111111111111"))
	assert.False(t, IsValidAddress(""))
	assert.False(t, IsValidAddress("not-a-wallet"))
	assert.False(t, IsValidAddress("0OIl"))
}

func TestGetSignaturesForAddress(t *testing.T) {
	node := &fakeNode{results: map[string]string{
		"getSignaturesForAddress": `[{"signature":"sig1","slot":10,"err":null,"confirmationStatus":"confirmed"},{"signature":"sig2","slot":9,"err":null}]`,
	}}
	client := newTestRPC(t, node)

	sigs, err := client.GetSignaturesForAddress(context.Background(), testWallet, 10)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	assert.Equal(t, "sig1", sigs[0].Signature)

	require.Len(t, node.calls, 1)
	call := node.calls[0]
	assert.Equal(t, "getSignaturesForAddress", call.Method)
	require.Len(t, call.Params, 2)

	var addr string
	require.NoError(t, json.Unmarshal(call.Params[0], &addr))
	assert.Equal(t, testWallet, addr)

	var opts map[string]interface{}
	require.NoError(t, json.Unmarshal(call.Params[1], &opts))
	assert.Equal(t, 10.0, opts["limit"])
	assert.Equal(t, "confirmed", opts["commitment"])
}

func TestGetSignaturesForAddress_TruncatesToLimit(t *testing.T) {
	node := &fakeNode{results: map[string]string{
		"getSignaturesForAddress": `[{"signature":"a"},{"signature":"b"},{"signature":"c"}]`,
	}}
	client := newTestRPC(t, node)

	sigs, err := client.GetSignaturesForAddress(context.Background(), testWallet, 2)
	require.NoError(t, err)
	assert.Len(t, sigs, 2)
}

func TestGetSignaturesForAddress_InvalidAddressMakesNoCall(t *testing.T) {
	node := &fakeNode{}
	client := newTestRPC(t, node)

	_, err := client.GetSignaturesForAddress(context.Background(), "bad wallet", 10)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Empty(t, node.calls)
}

func TestGetSignaturesForAddress_RPCError(t *testing.T) {
	node := &fakeNode{errors: map[string]string{"getSignaturesForAddress": "Invalid param"}}
	client := newTestRPC(t, node)

	_, err := client.GetSignaturesForAddress(context.Background(), testWallet, 10)
	assert.ErrorContains(t, err, "Invalid param")
}

func TestGetTransaction_SystemTransfer(t *testing.T) {
	node := &fakeNode{results: map[string]string{
		"getTransaction": `{
			"slot": 42,
			"meta": {"err": null, "fee": 5000},
			"transaction": {
				"signatures": ["sig1"],
				"message": {"instructions": [
					{"program": "spl-memo", "programId": "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr", "parsed": "hello"},
					{"program": "system", "programId": "11111111111111111111111111111111", "parsed": {"type": "transfer", "info": {"source": "` + testWallet + `", "destination": "` + testTreasury + `", "lamports": 1500000000}}}
				]}
			}
		}`,
	}}
	client := newTestRPC(t, node)

	tx, err := client.GetTransaction(context.Background(), "sig1")
	require.NoError(t, err)
	require.NotNil(t, tx)

	instructions := tx.Instructions()
	require.Len(t, instructions, 2)

	_, ok := instructions[0].SystemTransfer()
	assert.False(t, ok)

	info, ok := instructions[1].SystemTransfer()
	require.True(t, ok)
	assert.Equal(t, testWallet, info.Source)
	assert.Equal(t, testTreasury, info.Destination)
	assert.Equal(t, uint64(1_500_000_000), info.Lamports)

	var opts map[string]interface{}
	require.NoError(t, json.Unmarshal(node.calls[0].Params[1], &opts))
	assert.Equal(t, "jsonParsed", opts["encoding"])
}

func TestGetTransaction_NotFound(t *testing.T) {
	client := newTestRPC(t, &fakeNode{})

	tx, err := client.GetTransaction(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.Empty(t, tx.Instructions())
}

func TestInstruction_SystemTransferRejectsOtherTypes(t *testing.T) {
	ix := Instruction{Program: "system", Parsed: json.RawMessage(`{"type":"createAccount","info":{"source":"a","newAccount":"b","lamports":1}}`)}
	_, ok := ix.SystemTransfer()
	assert.False(t, ok)

	ix = Instruction{Program: "spl-token", Parsed: json.RawMessage(`{"type":"transfer","info":{"source":"a","destination":"b","amount":"1"}}`)}
	_, ok = ix.SystemTransfer()
	assert.False(t, ok)

	ix = Instruction{Program: "system"}
	_, ok = ix.SystemTransfer()
	assert.False(t, ok)
}

func TestGetBalance(t *testing.T) {
	node := &fakeNode{results: map[string]string{
		"getBalance": `{"context":{"slot":1},"value":2500000000}`,
	}}
	client := newTestRPC(t, node)

	lamports, err := client.GetBalance(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500_000_000), lamports)

	_, err = client.GetBalance(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestHealthCheck(t *testing.T) {
	node := &fakeNode{results: map[string]string{"getHealth": `"ok"`}}
	client := newTestRPC(t, node)
	assert.NoError(t, client.HealthCheck(context.Background()))

	node.errors = map[string]string{"getHealth": "Node is behind by 42 slots"}
	assert.ErrorContains(t, client.HealthCheck(context.Background()), "behind")
}

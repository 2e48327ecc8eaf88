package solrpc

import (
	"encoding/json"

	"github.com/framp/framp-backend/internal/consts"
)

type SignatureInfo struct {
	Signature          string          `json:"signature"`
	Slot               uint64          `json:"slot"`
	Err                json.RawMessage `json:"err"`
	BlockTime          *int64          `json:"blockTime"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

type Transaction struct {
	Slot        uint64           `json:"slot"`
	BlockTime   *int64           `json:"blockTime"`
	Meta        *TransactionMeta `json:"meta"`
	Transaction struct {
		Signatures []string `json:"signatures"`
		Message    struct {
			Instructions []Instruction `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
}

type TransactionMeta struct {
	Err json.RawMessage `json:"err"`
	Fee uint64          `json:"fee"`
}

// Instruction is a top-level instruction in jsonParsed encoding. Parsed is
// kept raw since its shape depends on the program.
type Instruction struct {
	Program   string          `json:"program"`
	ProgramID string          `json:"programId"`
	Parsed    json.RawMessage `json:"parsed"`
}

type TransferInfo struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Lamports    uint64 `json:"lamports"`
}

type parsedInstruction struct {
	Type string       `json:"type"`
	Info TransferInfo `json:"info"`
}

// SystemTransfer decodes a system program transfer. Any other instruction,
// including ones whose parsed payload does not decode, reports false.
func (i Instruction) SystemTransfer() (*TransferInfo, bool) {
	if i.Program != consts.SolanaSystemProgram || len(i.Parsed) == 0 {
		return nil, false
	}

	var parsed parsedInstruction
	if err := json.Unmarshal(i.Parsed, &parsed); err != nil {
		return nil, false
	}
	if parsed.Type != consts.SolanaTransferType {
		return nil, false
	}
	return &parsed.Info, true
}

// Instructions returns the top-level instructions, nil-safe.
func (t *Transaction) Instructions() []Instruction {
	if t == nil {
		return nil
	}
	return t.Transaction.Message.Instructions
}

type balanceResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value uint64 `json:"value"`
}

package solana

import (
	"encoding/json"
	"fmt"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
)

// TransactionError is a transaction that landed but failed on chain.
type TransactionError struct {
	Signature solana.Signature
	Raw       string

	// InstructionIndex is -1 when the failure is not tied to an instruction.
	InstructionIndex int64
	// Custom is set when the program returned InstructionError::Custom.
	Custom *int64
	// Kind names the failure: the anchor error name, the runtime kind
	// (e.g. "InvalidAccountData") or the top level transaction error.
	Kind string
}

func NewTransactionError(sig solana.Signature, status interface{}) *TransactionError {
	raw, err := json.Marshal(status)
	if err != nil {
		raw = []byte(fmt.Sprintf("%q", fmt.Sprint(status)))
	}
	te := &TransactionError{
		Signature:        sig,
		Raw:              string(raw),
		InstructionIndex: -1,
	}

	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.String {
		te.Kind = parsed.String()
		return te
	}

	ixErr := parsed.Get("InstructionError")
	if !ixErr.Exists() {
		parsed.ForEach(func(key, _ gjson.Result) bool {
			te.Kind = key.String()
			return false
		})
		return te
	}

	te.InstructionIndex = ixErr.Get("0").Int()
	detail := ixErr.Get("1")
	if custom := detail.Get("Custom"); custom.Exists() {
		code := custom.Int()
		te.Custom = &code
		te.Kind = monaco.ErrorName(code)
		return te
	}
	if detail.Type == gjson.String {
		te.Kind = detail.String()
		return te
	}
	detail.ForEach(func(key, _ gjson.Result) bool {
		te.Kind = key.String()
		return false
	})
	return te
}

func (e *TransactionError) Error() string {
	switch {
	case e.Custom != nil && e.Kind != "":
		return fmt.Sprintf("transaction %s failed: instruction %d: %s (custom %d)", e.Signature, e.InstructionIndex, e.Kind, *e.Custom)
	case e.Custom != nil:
		return fmt.Sprintf("transaction %s failed: instruction %d: custom program error %d", e.Signature, e.InstructionIndex, *e.Custom)
	case e.InstructionIndex >= 0:
		return fmt.Sprintf("transaction %s failed: instruction %d: %s", e.Signature, e.InstructionIndex, e.Kind)
	default:
		return fmt.Sprintf("transaction %s failed: %s", e.Signature, e.Raw)
	}
}

// IsSeedConstraint reports whether the program rejected the derived address,
// which for outcome initialisation means the index was already taken.
func (e *TransactionError) IsSeedConstraint() bool {
	if e.Custom == nil {
		return false
	}
	switch *e.Custom {
	case monaco.AnchorErrorConstraintSeeds, monaco.SystemErrorAccountAlreadyInUse:
		return true
	}
	return false
}

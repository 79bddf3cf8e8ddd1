package monacoprotocol

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

var (
	Instruction_InitializeMarketOutcome  = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "initialize_market_outcome")
	Instruction_AddPricesToMarketOutcome = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "add_prices_to_market_outcome")
)

// InitializeMarketOutcome creates the outcome account at the market's next index.
//
// Accounts:
//
//	[0] = [WRITE] outcome
//	[1] = [WRITE] market
//	[2] = [] authorised_operators
//	[3] = [WRITE, SIGNER] market_operator
//	[4] = [] system_program
type InitializeMarketOutcome struct {
	Title string
}

func NewInitializeMarketOutcomeInstruction(
	// Params:
	title string,

	// Accounts:
	outcome solanago.PublicKey,
	market solanago.PublicKey,
	authorisedOperators solanago.PublicKey,
	marketOperator solanago.PublicKey,
	systemProgram solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_InitializeMarketOutcome, &InitializeMarketOutcome{Title: title})
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(outcome, true, false),
		solanago.NewAccountMeta(market, true, false),
		solanago.NewAccountMeta(authorisedOperators, false, false),
		solanago.NewAccountMeta(marketOperator, true, true),
		solanago.NewAccountMeta(systemProgram, false, false),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// AddPricesToMarketOutcome appends prices to an outcome's price ladder.
//
// Accounts:
//
//	[0] = [WRITE] outcome
//	[1] = [] market
//	[2] = [] authorised_operators
//	[3] = [SIGNER] market_operator
type AddPricesToMarketOutcome struct {
	OutcomeIndex uint16
	NewPrices    []float64
}

func NewAddPricesToMarketOutcomeInstruction(
	// Params:
	outcomeIndex uint16,
	prices []float64,

	// Accounts:
	outcome solanago.PublicKey,
	market solanago.PublicKey,
	authorisedOperators solanago.PublicKey,
	marketOperator solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encodeInstruction(Instruction_AddPricesToMarketOutcome, &AddPricesToMarketOutcome{
		OutcomeIndex: outcomeIndex,
		NewPrices:    prices,
	})
	if err != nil {
		return nil, err
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(outcome, true, false),
		solanago.NewAccountMeta(market, false, false),
		solanago.NewAccountMeta(authorisedOperators, false, false),
		solanago.NewAccountMeta(marketOperator, false, true),
	}
	return solanago.NewInstruction(ProgramID, accounts, data), nil
}

// SetProgramID rewrites the program of an instruction built by this package.
func SetProgramID(ix solanago.Instruction, programID solanago.PublicKey) solanago.Instruction {
	if inst, ok := ix.(*solanago.GenericInstruction); ok {
		inst.ProgID = programID
	}
	return ix
}

func encodeInstruction(id bin.TypeID, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(id[:])
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeInitializeMarketOutcome reads the title back out of instruction data.
func DecodeInitializeMarketOutcome(data []byte) (*InitializeMarketOutcome, error) {
	return decodeInstruction[InitializeMarketOutcome](data, Instruction_InitializeMarketOutcome, "initialize_market_outcome")
}

func DecodeAddPricesToMarketOutcome(data []byte) (*AddPricesToMarketOutcome, error) {
	return decodeInstruction[AddPricesToMarketOutcome](data, Instruction_AddPricesToMarketOutcome, "add_prices_to_market_outcome")
}

func decodeInstruction[T any](data []byte, id bin.TypeID, name string) (*T, error) {
	return parseAccount[T](data, id, name)
}

package monaco

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	monacoprotocol "github.com/krazyTry/monaco-go/gen/monaco_protocol"
	"github.com/krazyTry/monaco-go/operators"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Devnet runs need an Initializing market and a keypair on its MARKET
// operators list:
//
//	MONACO_DEVNET_MARKET=<market> MONACO_DEVNET_KEYPAIR=~/.config/solana/id.json go test -run Devnet
func testInit(t *testing.T) (*rpc.Client, *ws.Client, *solana.Wallet, solana.PublicKey, context.Context, context.CancelFunc) {
	market := os.Getenv("MONACO_DEVNET_MARKET")
	keypair := os.Getenv("MONACO_DEVNET_KEYPAIR")
	if market == "" || keypair == "" {
		t.Skip("MONACO_DEVNET_MARKET and MONACO_DEVNET_KEYPAIR not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	wsClient, err := ws.Connect(ctx, rpc.DevNet_WS)
	if err != nil {
		cancel()
		t.Fatal("ws.Connect() fail", err)
	}
	rpcClient := rpc.New(rpc.DevNet_RPC)

	key, err := solana.PrivateKeyFromSolanaKeygenFile(keypair)
	if err != nil {
		cancel()
		t.Fatal("PrivateKeyFromSolanaKeygenFile() fail", err)
	}
	return rpcClient, wsClient, &solana.Wallet{PrivateKey: key}, solana.MustPublicKeyFromBase58(market), ctx, cancel
}

func TestFindPdas(t *testing.T) {
	market := solana.MustPublicKeyFromBase58("7o1PXyYZtBBDFZf9cEhHopn2C9R4G6GaPwFAxaNWM33D")

	outcome := FindMarketOutcomePda(monacoprotocol.ProgramID, market, 0)
	if !outcome.Success() {
		t.Fatal("FindMarketOutcomePda() fail", outcome.Err())
	}
	fmt.Println("outcome 0:", outcome.Data.Pda)

	ops := FindAuthorisedOperatorsAccountPda(context.Background(), monacoprotocol.ProgramID, operators.Market)
	if !ops.Success() {
		t.Fatal("FindAuthorisedOperatorsAccountPda() fail", ops.Err())
	}
	if ops.Data.Pda.Equals(outcome.Data.Pda) {
		t.Fatal("operators and outcome accounts collide")
	}
}

func TestDevnetInitialiseOutcomes(t *testing.T) {
	rpcClient, wsClient, operator, market, ctx, cancel := testInit(t)
	defer cancel()
	defer wsClient.Close()

	authorised := operators.IsAuthorisedOperator(ctx, rpcClient, monacoprotocol.ProgramID, operators.Market, operator.PublicKey(), rpc.CommitmentConfirmed)
	if !authorised.Success() {
		t.Fatal("IsAuthorisedOperator() fail", authorised.Err())
	}
	if !authorised.Data {
		t.Skipf("%s is not a MARKET operator", operator.PublicKey())
	}

	client := NewMarketOutcomeClient(rpcClient, operator,
		WithCommitment(rpc.CommitmentConfirmed),
		WithConfirmer(solanago.NewWSConfirmer(wsClient, rpc.CommitmentConfirmed, time.Minute)),
		WithIndexVerification(true),
	)

	before := client.GetMarket(ctx, market)
	if !before.Success() {
		t.Fatal("GetMarket() fail", before.Err())
	}
	fmt.Println("market:", before.Data.Title, "status:", before.Data.MarketStatus, "outcomes:", before.Data.MarketOutcomesCount)

	res := client.InitialiseOutcomes(ctx, market, []string{"Home", "Draw", "Away"})
	if !res.Success() {
		t.Fatal("InitialiseOutcomes() fail", res.Err())
	}
	for _, o := range res.Data.Outcomes {
		fmt.Printf("outcome %d %s pda:%s sig:%s\n", o.OutcomeIndex, o.Title, o.OutcomePda, o.TransactionID)
	}

	list := client.GetMarketOutcomesByMarket(ctx, market)
	if !list.Success() {
		t.Fatal("GetMarketOutcomesByMarket() fail", list.Err())
	}
	if got, want := len(list.Data), int(before.Data.MarketOutcomesCount)+3; got != want {
		t.Fatalf("outcomes got=%d want=%d", got, want)
	}
}

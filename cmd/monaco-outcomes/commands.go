package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	monaco "github.com/krazyTry/monaco-go"
	"github.com/krazyTry/monaco-go/config"
	marketOutcome "github.com/krazyTry/monaco-go/market_outcome"
	solanago "github.com/krazyTry/monaco-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func newClient(ctx context.Context, cfg *config.Config, log *logrus.Entry, needWallet bool) (*marketOutcome.MarketOutcome, func(), error) {
	rpcClient := rpc.New(cfg.RPC.Endpoint)
	closers := []func(){func() { _ = rpcClient.Close() }}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var confirmer solanago.Confirmer
	switch cfg.Confirm.Mode {
	case "ws":
		wsClient, err := ws.Connect(ctx, cfg.RPC.WsEndpoint)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrapf(err, "connect %s", cfg.RPC.WsEndpoint)
		}
		closers = append(closers, wsClient.Close)
		confirmer = solanago.NewWSConfirmer(wsClient, cfg.CommitmentType(), cfg.Confirm.Timeout.Duration)
	default:
		confirmer = solanago.NewPollConfirmer(rpcClient, cfg.CommitmentType(), cfg.Confirm.PollInterval.Duration, cfg.Confirm.Timeout.Duration).WithLogger(log)
	}

	var wallet *solana.Wallet
	if needWallet {
		var err error
		if wallet, err = loadWallet(cfg.Wallet.KeypairPath); err != nil {
			closeAll()
			return nil, nil, err
		}
		log = log.WithField("operator", wallet.PublicKey().String())
	}

	client := monaco.NewMarketOutcomeClient(rpcClient, wallet,
		monaco.WithProgramID(cfg.ProgramPublicKey()),
		monaco.WithCommitment(cfg.CommitmentType()),
		monaco.WithConfirmer(confirmer),
		monaco.WithIndexVerification(cfg.Program.VerifyIndex),
		monaco.WithLogger(log),
	)
	return client, closeAll, nil
}

func loadWallet(path string) (*solana.Wallet, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory")
		}
		path = filepath.Join(home, path[2:])
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load keypair %s", path)
	}
	return &solana.Wallet{PrivateKey: key}, nil
}

func runPda(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("pda: expected <market> <index>")
	}
	market, err := parseMarket(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	res := monaco.FindMarketOutcomePda(cfg.ProgramPublicKey(), market, index)
	if !res.Success() {
		return res.Err()
	}
	fmt.Fprintln(out, res.Data.Pda)
	return nil
}

func runNext(ctx context.Context, client *marketOutcome.MarketOutcome, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("next: expected <market>")
	}
	market, err := parseMarket(args[0])
	if err != nil {
		return err
	}
	res := client.FindNextOutcomePda(ctx, market)
	if !res.Success() {
		return res.Err()
	}
	fmt.Fprintln(out, res.Data.Pda)
	return nil
}

func runList(ctx context.Context, client *marketOutcome.MarketOutcome, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("list: expected <market>")
	}
	market, err := parseMarket(args[0])
	if err != nil {
		return err
	}
	res := client.GetMarketOutcomesByMarket(ctx, market)
	if !res.Success() {
		return res.Err()
	}
	for _, acc := range res.Data {
		fmt.Fprintf(out, "%d\t%s\t%s\tprices=%d\n", acc.Account.Index, acc.Account.Title, acc.Pubkey, len(acc.Account.PriceLadder))
	}
	return nil
}

func runInit(ctx context.Context, client *marketOutcome.MarketOutcome, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New("init: expected <market> <title> [title...]")
	}
	market, err := parseMarket(args[0])
	if err != nil {
		return err
	}
	titles := args[1:]

	if len(titles) == 1 {
		res := client.InitialiseOutcome(ctx, market, titles[0])
		if !res.Success() {
			return res.Err()
		}
		printOutcome(out, res.Data)
		return nil
	}

	res := client.InitialiseOutcomes(ctx, market, titles)
	for _, o := range res.Data.Outcomes {
		printOutcome(out, o)
	}
	for _, err := range res.Errors {
		fmt.Fprintln(out, "error:", err)
	}
	fmt.Fprintf(out, "batch %s: %s\n", res.Data.BatchID, res.Data.Status())
	return res.Err()
}

func printOutcome(out io.Writer, o marketOutcome.OutcomeInitialisation) {
	fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", o.OutcomeIndex, o.Title, o.OutcomePda, o.TransactionID)
}

func runPrices(ctx context.Context, client *marketOutcome.MarketOutcome, args []string, out io.Writer) error {
	if len(args) < 3 {
		return errors.New("prices: expected <market> <index> <price>...")
	}
	market, err := parseMarket(args[0])
	if err != nil {
		return err
	}
	index, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	prices, err := parsePrices(args[2:])
	if err != nil {
		return err
	}

	start := time.Now()
	res := client.AddPricesToOutcome(ctx, market, index, prices)
	for _, sig := range res.Data.Transactions {
		fmt.Fprintln(out, sig)
	}
	for _, err := range res.Errors {
		fmt.Fprintln(out, "error:", err)
	}
	fmt.Fprintf(out, "outcome %d: %d transactions in %s\n", index, len(res.Data.Transactions), time.Since(start).Round(time.Millisecond))
	return res.Err()
}

func parseMarket(s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.Wrapf(err, "invalid market %q", s)
	}
	return pk, nil
}

func parseIndex(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid outcome index %q", s)
	}
	return uint16(n), nil
}

// parsePrices reads decimal strings exactly before handing them over as
// floats, so "1.10" and "1.1" are the same price.
func parsePrices(args []string) ([]float64, error) {
	prices := make([]float64, 0, len(args))
	for _, a := range args {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid price %q", a)
		}
		f, _ := d.Float64()
		prices = append(prices, f)
	}
	return prices, nil
}

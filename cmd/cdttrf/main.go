package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bibbank/sepa/internal/application/dto"
	"github.com/bibbank/sepa/internal/application/usecase"
	"github.com/bibbank/sepa/internal/config"
	"github.com/bibbank/sepa/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Writer:    os.Stderr,
		Component: "cdttrf",
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Error("cdttrf failed", "error", err)
		os.Exit(1)
	}
}

// run reads a JSON array of credit transfers from the file named in args, or
// from stdin, and writes one CdtTrfTxInf fragment per accepted transaction.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	in := stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var reqs []dto.CreditTransferRequest
	if err := json.NewDecoder(in).Decode(&reqs); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	txs, err := dto.ToTransactions(reqs, cfg.GenerateEndToEndIDs)
	if err != nil {
		return fmt.Errorf("map input: %w", err)
	}

	uc, err := usecase.NewPrepareTransactions(cfg.BatchPolicy, logger, nil)
	if err != nil {
		return err
	}

	result, err := uc.Execute(ctx, txs)
	if err != nil {
		return err
	}

	for _, el := range result.Elements {
		data, err := el.ToXML(cfg.IndentXML)
		if err != nil {
			return fmt.Errorf("encode %s: %w", el.Name(), err)
		}
		if _, err := fmt.Fprintf(stdout, "%s\n", data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

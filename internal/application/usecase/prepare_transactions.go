package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/sepa/internal/config"
	"github.com/bibbank/sepa/pkg/iso20022"
	"github.com/bibbank/sepa/pkg/money"
	"github.com/bibbank/sepa/pkg/sepa"
)

// ErrBatchRejected is returned under the reject policy when the batch holds
// a transaction that fails the validity check.
var ErrBatchRejected = errors.New("batch rejected")

// PrepareResult holds the serialized subtrees in input order, the
// instruction ids of the transactions left out and the control sum of the
// accepted amounts.
type PrepareResult struct {
	Elements   []iso20022.Element
	Rejected   []string
	ControlSum decimal.Decimal
}

// Accepted returns the number of transactions serialized.
func (r PrepareResult) Accepted() int { return len(r.Elements) }

// PrepareTransactions pre-filters a batch with CheckIsValidTransaction and
// builds the subtree of every transaction that passes.
type PrepareTransactions struct {
	policy   config.BatchPolicy
	logger   *slog.Logger
	accepted metric.Int64Counter
	rejected metric.Int64Counter
}

// NewPrepareTransactions wires the use case. A nil provider falls back to
// the global OpenTelemetry meter provider.
func NewPrepareTransactions(policy config.BatchPolicy, logger *slog.Logger, provider metric.MeterProvider) (*PrepareTransactions, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	if logger == nil {
		logger = slog.Default()
	}

	meter := provider.Meter("github.com/bibbank/sepa/internal/application/usecase")

	accepted, err := meter.Int64Counter(
		"sepa.transactions.accepted",
		metric.WithDescription("Number of transactions serialized into a batch"),
		metric.WithUnit("{transaction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sepa.transactions.accepted counter: %w", err)
	}

	rejected, err := meter.Int64Counter(
		"sepa.transactions.rejected",
		metric.WithDescription("Number of transactions failing the validity check"),
		metric.WithUnit("{transaction}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sepa.transactions.rejected counter: %w", err)
	}

	return &PrepareTransactions{
		policy:   policy,
		logger:   logger,
		accepted: accepted,
		rejected: rejected,
	}, nil
}

// Execute checks every transaction in order. Under the drop policy invalid
// transactions are skipped and listed in Rejected; under the reject policy the
// first one aborts the batch with ErrBatchRejected.
func (uc *PrepareTransactions) Execute(ctx context.Context, txs []sepa.Transaction) (PrepareResult, error) {
	var result PrepareResult
	var amounts []string
	policyAttr := metric.WithAttributes(attribute.String("policy", string(uc.policy)))

	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return PrepareResult{}, err
		}

		if !tx.CheckIsValidTransaction() {
			uc.rejected.Add(ctx, 1, policyAttr)
			uc.logger.WarnContext(ctx, "transaction failed validity check",
				"index", i,
				"instruction_id", tx.InstructionID(),
				"policy", uc.policy,
			)
			if uc.policy == config.PolicyReject {
				return PrepareResult{}, fmt.Errorf("%w: transaction %d (instruction %q) is missing BIC, IBAN or name",
					ErrBatchRejected, i, tx.InstructionID())
			}
			result.Rejected = append(result.Rejected, tx.InstructionID())
			continue
		}

		result.Elements = append(result.Elements, tx.Element())
		amounts = append(amounts, tx.InstructedAmount())
	}

	sum, err := money.SumAmounts(amounts)
	if err != nil {
		return PrepareResult{}, fmt.Errorf("control sum: %w", err)
	}
	result.ControlSum = sum

	uc.accepted.Add(ctx, int64(result.Accepted()), policyAttr)
	uc.logger.InfoContext(ctx, "batch prepared",
		"accepted", result.Accepted(),
		"rejected", len(result.Rejected),
		"control_sum", money.FormatAmount(result.ControlSum),
	)

	return result, nil
}

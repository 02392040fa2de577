package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/sepa/pkg/sepa"
)

// CreditTransferRequest is the input DTO for one credit transfer of a batch.
type CreditTransferRequest struct {
	InstructionID    string          `json:"instruction_id"`
	EndToEndID       string          `json:"end_to_end_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CreditorBIC      string          `json:"creditor_bic"`
	CreditorIBAN     string          `json:"creditor_iban"`
	CreditorName     string          `json:"creditor_name"`
	AddressLine      string          `json:"address_line"`
	Country          string          `json:"country"`
	InvoiceText      string          `json:"invoice_text"`
	InvoiceCode      string          `json:"invoice_code"`
	InvoiceReference string          `json:"invoice_reference"`
}

// ToTransaction maps the request onto a credit transfer, stopping at the
// first rejected field. The instruction id is applied first so every setter
// error carries it. With generateEndToEndID, an empty end-to-end id is
// replaced by a random one.
func (r CreditTransferRequest) ToTransaction(generateEndToEndID bool) (*sepa.CreditTransferTransaction, error) {
	tx := sepa.NewCreditTransferTransaction()
	tx.SetInstructionID(r.InstructionID)

	endToEndID := r.EndToEndID
	if endToEndID == "" && generateEndToEndID {
		endToEndID = sepa.NewEndToEndID()
	}
	tx.SetEndToEndID(endToEndID)
	tx.SetInstructedAmount(r.Amount)
	tx.SetCurrency(r.Currency)
	tx.SetBIC(r.CreditorBIC)

	if r.CreditorIBAN != "" {
		if err := tx.SetIBAN(r.CreditorIBAN); err != nil {
			return nil, err
		}
	}

	setters := []struct {
		value string
		set   func(string) error
	}{
		{r.CreditorName, tx.SetCreditorName},
		{r.AddressLine, tx.SetCreditorAddressLine},
		{r.Country, tx.SetCreditorCountry},
		{r.InvoiceText, tx.SetCreditInvoice},
		{r.InvoiceCode, tx.SetCreditInvoiceCode},
		{r.InvoiceReference, tx.SetCreditInvoiceReference},
	}
	for _, s := range setters {
		if err := s.set(s.value); err != nil {
			return nil, err
		}
	}

	return tx, nil
}

// ToTransactions maps a whole batch. Errors name the zero-based record index.
func ToTransactions(reqs []CreditTransferRequest, generateEndToEndID bool) ([]sepa.Transaction, error) {
	txs := make([]sepa.Transaction, 0, len(reqs))
	for i, req := range reqs {
		tx, err := req.ToTransaction(generateEndToEndID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

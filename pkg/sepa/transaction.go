package sepa

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/bibbank/sepa/pkg/iso20022"
	"github.com/bibbank/sepa/pkg/money"
)

// Transaction is the contract a payment information block relies on to
// include a transaction: a minimum-viability check, the formatted amount
// for the control sum and the schema subtree.
type Transaction interface {
	InstructionID() string
	InstructedAmount() string
	CheckIsValidTransaction() bool
	Element() iso20022.Element
}

var (
	_ Transaction = (*CreditTransferTransaction)(nil)
	_ Transaction = (*DirectDebitTransaction)(nil)
)

// Field length limits from the SEPA implementation guidelines.
const (
	maxNameLength       = 70
	maxTextLength       = 140
	maxIdentifierLength = 35
)

// decodeBounded decodes value and checks it against limit. The returned
// string is what gets stored, so stored and emitted length always agree.
func decodeBounded(field, value string, limit int, instructionID string) (string, error) {
	decoded := UnicodeDecode(value)
	if utf8.RuneCountInString(decoded) > limit {
		return "", &InvalidFieldError{Field: field, MaxLength: limit, InstructionID: instructionID}
	}
	return decoded, nil
}

func validatedIBAN(iban, instructionID string) (string, error) {
	stripped := RemoveSpaces(iban)
	if !CheckIBAN(stripped) {
		return "", &InvalidIBANError{IBAN: stripped, InstructionID: instructionID}
	}
	return stripped, nil
}

func parsedAmount(amount, instructionID string) (string, error) {
	d, err := money.ParseAmount(amount)
	if err != nil {
		return "", &InvalidFieldError{
			Field:         "InstructedAmount",
			Reason:        "is not a decimal amount",
			InstructionID: instructionID,
			Err:           err,
		}
	}
	return money.FormatAmount(d), nil
}

func amountOrZero(amount string) string {
	if amount == "" {
		return money.FormatAmount(decimal.Zero)
	}
	return amount
}

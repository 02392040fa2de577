package sepa

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/sepa/pkg/iso20022"
	"github.com/bibbank/sepa/pkg/money"
)

const isoDate = "2006-01-02"

// DirectDebitTransaction is a single SEPA direct debit collected under a
// mandate, rendered as a pain.008 DrctDbtTxInf block.
type DirectDebitTransaction struct {
	instructionID    string
	endToEndID       string
	instructedAmount string
	currency         string
	bic              string
	iban             string
	debtorName       string
	mandateID        string
	mandateSignDate  time.Time
	remittanceInfo   string
}

// NewDirectDebitTransaction returns an empty direct debit.
func NewDirectDebitTransaction() *DirectDebitTransaction {
	return &DirectDebitTransaction{instructedAmount: money.FormatAmount(decimal.Zero)}
}

// SetInstructionID sets the point-to-point reference used in errors and PmtId.
func (t *DirectDebitTransaction) SetInstructionID(id string) { t.instructionID = id }

// SetEndToEndID sets the reference passed unchanged to the debtor.
func (t *DirectDebitTransaction) SetEndToEndID(id string) { t.endToEndID = id }

// SetInstructedAmount stores amount rounded to two fraction digits.
func (t *DirectDebitTransaction) SetInstructedAmount(amount decimal.Decimal) {
	t.instructedAmount = money.FormatAmount(amount)
}

// SetInstructedAmountString parses and stores a decimal amount. An amount that
// does not parse leaves the previous value in place.
func (t *DirectDebitTransaction) SetInstructedAmountString(amount string) error {
	formatted, err := parsedAmount(amount, t.instructionID)
	if err != nil {
		return err
	}
	t.instructedAmount = formatted
	return nil
}

// SetCurrency stores the currency code trimmed and uppercased.
func (t *DirectDebitTransaction) SetCurrency(currency string) {
	t.currency = money.NormalizeCurrency(currency)
}

// SetBIC sets the debtor agent's BIC with whitespace removed.
func (t *DirectDebitTransaction) SetBIC(bic string) {
	t.bic = RemoveSpaces(bic)
}

// SetIBAN sets the debtor account after removing whitespace and verifying the
// checksum.
func (t *DirectDebitTransaction) SetIBAN(iban string) error {
	stripped, err := validatedIBAN(iban, t.instructionID)
	if err != nil {
		return err
	}
	t.iban = stripped
	return nil
}

// SetDebtorName sets the debtor's name, at most 70 characters once decoded.
func (t *DirectDebitTransaction) SetDebtorName(name string) error {
	decoded, err := decodeBounded("DebtorName", name, maxNameLength, t.instructionID)
	if err != nil {
		return err
	}
	t.debtorName = decoded
	return nil
}

// SetMandateID sets the unique mandate reference, at most 35 characters.
func (t *DirectDebitTransaction) SetMandateID(id string) error {
	decoded, err := decodeBounded("MandateID", id, maxIdentifierLength, t.instructionID)
	if err != nil {
		return err
	}
	t.mandateID = decoded
	return nil
}

// SetMandateSignDate sets the date the debtor signed the mandate. Only the
// calendar date is kept.
func (t *DirectDebitTransaction) SetMandateSignDate(date time.Time) {
	y, m, d := date.Date()
	t.mandateSignDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SetRemittanceInfo sets the unstructured remittance text, at most 140
// characters once decoded.
func (t *DirectDebitTransaction) SetRemittanceInfo(info string) error {
	decoded, err := decodeBounded("RemittanceInfo", info, maxTextLength, t.instructionID)
	if err != nil {
		return err
	}
	t.remittanceInfo = decoded
	return nil
}

// Accessors

func (t *DirectDebitTransaction) InstructionID() string      { return t.instructionID }
func (t *DirectDebitTransaction) EndToEndID() string         { return t.endToEndID }
func (t *DirectDebitTransaction) InstructedAmount() string   { return amountOrZero(t.instructedAmount) }
func (t *DirectDebitTransaction) BIC() string                { return t.bic }
func (t *DirectDebitTransaction) IBAN() string               { return t.iban }
func (t *DirectDebitTransaction) DebtorName() string         { return t.debtorName }
func (t *DirectDebitTransaction) MandateID() string          { return t.mandateID }
func (t *DirectDebitTransaction) MandateSignDate() time.Time { return t.mandateSignDate }
func (t *DirectDebitTransaction) RemittanceInfo() string     { return t.remittanceInfo }

// Currency returns the currency code, storing EUR on the first read of an
// empty value.
func (t *DirectDebitTransaction) Currency() string {
	if t.currency == "" {
		t.currency = money.DefaultCurrency
	}
	return t.currency
}

// CheckIsValidTransaction reports whether BIC, IBAN, debtor name and mandate
// reference are all present.
func (t *DirectDebitTransaction) CheckIsValidTransaction() bool {
	return t.bic != "" && t.iban != "" && t.debtorName != "" && t.mandateID != ""
}

// Element builds the DrctDbtTxInf subtree in pain.008 order. RmtInf is left
// out when there is no remittance text.
func (t *DirectDebitTransaction) Element() iso20022.Element {
	signDate := ""
	if !t.mandateSignDate.IsZero() {
		signDate = t.mandateSignDate.Format(isoDate)
	}

	children := []iso20022.Element{
		iso20022.NewElement("PmtId",
			iso20022.Leaf("InstrId", t.instructionID),
			iso20022.Leaf("EndToEndId", t.endToEndID),
		),
		iso20022.Leaf("InstdAmt", t.InstructedAmount()).WithAttr("Ccy", t.Currency()),
		iso20022.NewElement("DrctDbtTx",
			iso20022.NewElement("MndtRltdInf",
				iso20022.Leaf("MndtId", t.mandateID),
				iso20022.Leaf("DtOfSgntr", signDate),
			),
		),
		iso20022.NewElement("DbtrAgt",
			iso20022.NewElement("FinInstnId", iso20022.Leaf("BIC", t.bic)),
		),
		iso20022.NewElement("Dbtr", iso20022.Leaf("Nm", t.debtorName)),
		iso20022.NewElement("DbtrAcct",
			iso20022.NewElement("Id", iso20022.Leaf("IBAN", t.iban)),
		),
	}

	if t.remittanceInfo != "" {
		children = append(children, iso20022.NewElement("RmtInf", iso20022.Leaf("Ustrd", t.remittanceInfo)))
	}

	return iso20022.NewElement("DrctDbtTxInf", children...)
}

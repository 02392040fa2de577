package sepa

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/sepa/pkg/iso20022"
	"github.com/bibbank/sepa/pkg/money"
)

// CreditTransferTransaction is a single SEPA credit transfer, rendered as a
// pain.001 CdtTrfTxInf block. The zero value is an empty transaction ready
// to be populated through its setters.
type CreditTransferTransaction struct {
	instructionID          string
	endToEndID             string
	instructedAmount       string
	bic                    string
	iban                   string
	creditorName           string
	creditorAddressLine    string
	creditorCountry        string
	creditInvoice          string
	creditInvoiceCode      string
	creditInvoiceReference string
	currency               string
}

// NewCreditTransferTransaction returns an empty credit transfer.
func NewCreditTransferTransaction() *CreditTransferTransaction {
	return &CreditTransferTransaction{instructedAmount: money.FormatAmount(decimal.Zero)}
}

// SetInstructionID sets the identifier assigned by the instructing party.
func (t *CreditTransferTransaction) SetInstructionID(id string) {
	t.instructionID = id
}

// SetEndToEndID sets the identifier passed unchanged through the whole
// payment chain.
func (t *CreditTransferTransaction) SetEndToEndID(id string) {
	t.endToEndID = id
}

// SetInstructedAmount stores amount with two fraction digits.
func (t *CreditTransferTransaction) SetInstructedAmount(amount decimal.Decimal) {
	t.instructedAmount = money.FormatAmount(amount)
}

// SetInstructedAmountString parses and stores a decimal amount such as "12.5".
func (t *CreditTransferTransaction) SetInstructedAmountString(amount string) error {
	formatted, err := parsedAmount(amount, t.instructionID)
	if err != nil {
		return err
	}
	t.instructedAmount = formatted
	return nil
}

// SetBIC sets the creditor agent's BIC. Whitespace is removed; the code is
// not otherwise checked.
func (t *CreditTransferTransaction) SetBIC(bic string) {
	t.bic = RemoveSpaces(bic)
}

// SetIBAN sets the creditor account after removing whitespace and verifying
// the checksum.
func (t *CreditTransferTransaction) SetIBAN(iban string) error {
	stripped, err := validatedIBAN(iban, t.instructionID)
	if err != nil {
		return err
	}
	t.iban = stripped
	return nil
}

// SetCreditorName sets the creditor name, at most 70 characters.
func (t *CreditTransferTransaction) SetCreditorName(name string) error {
	return t.setText(&t.creditorName, "CreditorName", name, maxNameLength)
}

// SetCreditorAddressLine sets the postal address line, at most 140 characters.
func (t *CreditTransferTransaction) SetCreditorAddressLine(line string) error {
	return t.setText(&t.creditorAddressLine, "CreditorAddressLine", line, maxTextLength)
}

// SetCreditorCountry sets the postal address country, at most 140 characters.
func (t *CreditTransferTransaction) SetCreditorCountry(country string) error {
	return t.setText(&t.creditorCountry, "CreditorCountry", country, maxTextLength)
}

// SetCreditInvoice sets the unstructured remittance text, at most 140 characters.
func (t *CreditTransferTransaction) SetCreditInvoice(invoice string) error {
	return t.setText(&t.creditInvoice, "CreditInvoice", invoice, maxTextLength)
}

// SetCreditInvoiceCode sets the purpose code, at most 140 characters.
func (t *CreditTransferTransaction) SetCreditInvoiceCode(code string) error {
	return t.setText(&t.creditInvoiceCode, "CreditInvoiceCode", code, maxTextLength)
}

// SetCreditInvoiceReference sets the structured creditor reference, at most
// 140 characters.
func (t *CreditTransferTransaction) SetCreditInvoiceReference(ref string) error {
	return t.setText(&t.creditInvoiceReference, "CreditInvoiceReference", ref, maxTextLength)
}

// SetCurrency stores the currency code trimmed and uppercased. Membership in ISO 4217 is
// left to the receiving bank.
func (t *CreditTransferTransaction) SetCurrency(currency string) {
	t.currency = money.NormalizeCurrency(currency)
}

func (t *CreditTransferTransaction) setText(dst *string, field, value string, limit int) error {
	decoded, err := decodeBounded(field, value, limit, t.instructionID)
	if err != nil {
		return err
	}
	*dst = decoded
	return nil
}

// Accessors

func (t *CreditTransferTransaction) InstructionID() string          { return t.instructionID }
func (t *CreditTransferTransaction) EndToEndID() string             { return t.endToEndID }
func (t *CreditTransferTransaction) InstructedAmount() string       { return amountOrZero(t.instructedAmount) }
func (t *CreditTransferTransaction) BIC() string                    { return t.bic }
func (t *CreditTransferTransaction) IBAN() string                   { return t.iban }
func (t *CreditTransferTransaction) CreditorName() string           { return t.creditorName }
func (t *CreditTransferTransaction) CreditorAddressLine() string    { return t.creditorAddressLine }
func (t *CreditTransferTransaction) CreditorCountry() string        { return t.creditorCountry }
func (t *CreditTransferTransaction) CreditInvoice() string          { return t.creditInvoice }
func (t *CreditTransferTransaction) CreditInvoiceCode() string      { return t.creditInvoiceCode }
func (t *CreditTransferTransaction) CreditInvoiceReference() string { return t.creditInvoiceReference }

// Currency returns the currency code. An empty currency is replaced by EUR
// on read, and the replacement is stored.
func (t *CreditTransferTransaction) Currency() string {
	if t.currency == "" {
		t.currency = money.DefaultCurrency
	}
	return t.currency
}

// CheckIsValidTransaction reports whether the fields a bank needs at minimum
// (BIC, IBAN and creditor name) are present. Amount, currency and remittance
// information are not checked.
func (t *CreditTransferTransaction) CheckIsValidTransaction() bool {
	return t.bic != "" && t.iban != "" && t.creditorName != ""
}

// Element builds the CdtTrfTxInf subtree. Children follow the order required
// by the pain.001 CreditTransferTransactionInformation type. PstlAdr is only
// emitted with both address line and country, Purp only with a purpose code.
func (t *CreditTransferTransaction) Element() iso20022.Element {
	creditor := []iso20022.Element{iso20022.Leaf("Nm", t.creditorName)}
	if t.creditorAddressLine != "" && t.creditorCountry != "" {
		creditor = append(creditor, iso20022.NewElement("PstlAdr",
			iso20022.Leaf("AdrLine", t.creditorAddressLine),
			iso20022.Leaf("Ctry", t.creditorCountry),
		))
	}

	children := []iso20022.Element{
		iso20022.NewElement("PmtId",
			iso20022.Leaf("InstrId", t.instructionID),
			iso20022.Leaf("EndToEndId", t.endToEndID),
		),
		iso20022.NewElement("Amt",
			iso20022.Leaf("InstdAmt", t.InstructedAmount()).WithAttr("Ccy", t.Currency()),
		),
		iso20022.NewElement("CdtrAgt",
			iso20022.NewElement("FinInstnId", iso20022.Leaf("BIC", t.bic)),
		),
		iso20022.NewElement("Cdtr", creditor...),
		iso20022.NewElement("CdtrAcct",
			iso20022.NewElement("Id", iso20022.Leaf("IBAN", t.iban)),
		),
		iso20022.NewElement("RmtInf",
			iso20022.NewElement("Strd",
				iso20022.NewElement("CdtrRefInf", iso20022.Leaf("Ref", t.creditInvoiceReference)),
				iso20022.Leaf("AddtlRmtInf", t.creditInvoice),
			),
		),
	}

	if t.creditInvoiceCode != "" {
		children = append(children, iso20022.NewElement("Purp", iso20022.Leaf("Cd", t.creditInvoiceCode)))
	}

	return iso20022.NewElement("CdtTrfTxInf", children...)
}

// SimpleXMLElementTransaction is an alias of Element.
func (t *CreditTransferTransaction) SimpleXMLElementTransaction() iso20022.Element {
	return t.Element()
}

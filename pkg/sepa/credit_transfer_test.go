package sepa_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/sepa/pkg/sepa"
)

const testIBAN = "DE89370400440532013000"

func newScenarioTransfer(t *testing.T) *sepa.CreditTransferTransaction {
	t.Helper()
	tx := sepa.NewCreditTransferTransaction()
	tx.SetInstructionID("TX1")
	tx.SetEndToEndID("E2E1")
	tx.SetInstructedAmount(decimal.NewFromFloat(12.5))
	tx.SetBIC("BANKDEFF")
	require.NoError(t, tx.SetIBAN(testIBAN))
	require.NoError(t, tx.SetCreditorName("Acme Corp"))
	require.NoError(t, tx.SetCreditInvoice("Invoice 42"))
	return tx
}

func TestNewCreditTransferTransaction_Defaults(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()

	assert.Equal(t, "", tx.InstructionID())
	assert.Equal(t, "", tx.EndToEndID())
	assert.Equal(t, "0.00", tx.InstructedAmount())
	assert.Equal(t, "", tx.BIC())
	assert.Equal(t, "", tx.IBAN())
	assert.Equal(t, "", tx.CreditorName())
	assert.Equal(t, "", tx.CreditorAddressLine())
	assert.Equal(t, "", tx.CreditorCountry())
	assert.Equal(t, "", tx.CreditInvoice())
	assert.Equal(t, "", tx.CreditInvoiceCode())
	assert.Equal(t, "", tx.CreditInvoiceReference())
	assert.Equal(t, "EUR", tx.Currency())
}

func TestCreditTransferTransaction_ZeroValueUsable(t *testing.T) {
	var tx sepa.CreditTransferTransaction
	assert.Equal(t, "0.00", tx.InstructedAmount())
	assert.Equal(t, "EUR", tx.Currency())
	assert.False(t, tx.CheckIsValidTransaction())
}

func TestSetIBAN_StripsSpaces(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	require.NoError(t, tx.SetIBAN("DE89 3704 0044 0532 0130 00"))
	assert.Equal(t, testIBAN, tx.IBAN())
}

func TestSetIBAN_InvalidChecksum(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	tx.SetInstructionID("TX-9")

	err := tx.SetIBAN("DE00370400440532013000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sepa.ErrInvalidIBAN))

	var ibanErr *sepa.InvalidIBANError
	require.True(t, errors.As(err, &ibanErr))
	assert.Equal(t, "TX-9", ibanErr.InstructionID)
	assert.Equal(t, "DE00370400440532013000", ibanErr.IBAN)
	assert.Contains(t, err.Error(), "TX-9")
	assert.Equal(t, "", tx.IBAN())
}

func TestSetIBAN_FailureKeepsPreviousValue(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	require.NoError(t, tx.SetIBAN(testIBAN))

	assert.Error(t, tx.SetIBAN("GB00NWBK60161331926819"))
	assert.Equal(t, testIBAN, tx.IBAN())

	require.NoError(t, tx.SetIBAN("GB29 NWBK 6016 1331 9268 19"))
	assert.Equal(t, "GB29NWBK60161331926819", tx.IBAN())
}

func TestSetIBAN_EmptyRejected(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	assert.ErrorIs(t, tx.SetIBAN("   "), sepa.ErrInvalidIBAN)
}

func TestSetBIC_StripsWhitespaceOnly(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	tx.SetBIC(" COBA DE FF XXX ")
	assert.Equal(t, "COBADEFFXXX", tx.BIC())

	tx.SetBIC("not a bic")
	assert.Equal(t, "notabic", tx.BIC())
}

func TestSetCurrency_Uppercases(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	assert.Equal(t, "EUR", tx.Currency())

	tx.SetCurrency("usd")
	assert.Equal(t, "USD", tx.Currency())

	tx.SetCurrency(" gbp ")
	assert.Equal(t, "GBP", tx.Currency())

	tx.SetCurrency("")
	assert.Equal(t, "EUR", tx.Currency())
}

func TestSetInstructedAmount(t *testing.T) {
	tests := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromFloat(12.5), "12.50"},
		{decimal.NewFromInt(7), "7.00"},
		{decimal.RequireFromString("1234.567"), "1234.57"},
		{decimal.Zero, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			tx := sepa.NewCreditTransferTransaction()
			tx.SetInstructedAmount(tt.amount)
			assert.Equal(t, tt.want, tx.InstructedAmount())
		})
	}
}

func TestSetInstructedAmountString(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	tx.SetInstructionID("TX-A")
	require.NoError(t, tx.SetInstructedAmountString("99.9"))
	assert.Equal(t, "99.90", tx.InstructedAmount())

	err := tx.SetInstructedAmountString("ninety")
	require.Error(t, err)
	assert.ErrorIs(t, err, sepa.ErrInvalidField)

	var fieldErr *sepa.InvalidFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "InstructedAmount", fieldErr.Field)
	assert.Equal(t, "TX-A", fieldErr.InstructionID)
	require.Error(t, fieldErr.Err)
	assert.Contains(t, err.Error(), `invalid amount "ninety"`)
	assert.Equal(t, "99.90", tx.InstructedAmount())
}

func TestBoundedTextSetters(t *testing.T) {
	tests := []struct {
		field string
		max   int
		set   func(*sepa.CreditTransferTransaction, string) error
		get   func(*sepa.CreditTransferTransaction) string
	}{
		{"CreditorName", 70, (*sepa.CreditTransferTransaction).SetCreditorName, (*sepa.CreditTransferTransaction).CreditorName},
		{"CreditorAddressLine", 140, (*sepa.CreditTransferTransaction).SetCreditorAddressLine, (*sepa.CreditTransferTransaction).CreditorAddressLine},
		{"CreditorCountry", 140, (*sepa.CreditTransferTransaction).SetCreditorCountry, (*sepa.CreditTransferTransaction).CreditorCountry},
		{"CreditInvoice", 140, (*sepa.CreditTransferTransaction).SetCreditInvoice, (*sepa.CreditTransferTransaction).CreditInvoice},
		{"CreditInvoiceCode", 140, (*sepa.CreditTransferTransaction).SetCreditInvoiceCode, (*sepa.CreditTransferTransaction).CreditInvoiceCode},
		{"CreditInvoiceReference", 140, (*sepa.CreditTransferTransaction).SetCreditInvoiceReference, (*sepa.CreditTransferTransaction).CreditInvoiceReference},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			tx := sepa.NewCreditTransferTransaction()
			tx.SetInstructionID("TX-LEN")

			atLimit := strings.Repeat("ä", tt.max)
			require.NoError(t, tt.set(tx, atLimit))
			assert.Equal(t, atLimit, tt.get(tx))

			err := tt.set(tx, strings.Repeat("x", tt.max+1))
			require.Error(t, err)
			assert.ErrorIs(t, err, sepa.ErrInvalidField)

			var fieldErr *sepa.InvalidFieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
			assert.Equal(t, tt.max, fieldErr.MaxLength)
			assert.Equal(t, "TX-LEN", fieldErr.InstructionID)

			assert.Equal(t, atLimit, tt.get(tx), "failed setter must not modify the field")

			require.NoError(t, tt.set(tx, ""))
			assert.Equal(t, "", tt.get(tx))
		})
	}
}

func TestSetCreditorName_DecodesBeforeMeasuring(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()

	// 70 escaped characters are 420 bytes of input but 70 characters once decoded.
	require.NoError(t, tx.SetCreditorName(strings.Repeat(`\u00fc`, 70)))
	assert.Equal(t, strings.Repeat("ü", 70), tx.CreditorName())

	require.NoError(t, tx.SetCreditorName("M\xfcller"))
	assert.Equal(t, "Müller", tx.CreditorName())
}

func TestInvalidFieldError_EmptyInstructionID(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	err := tx.SetCreditorName(strings.Repeat("n", 71))

	var fieldErr *sepa.InvalidFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "", fieldErr.InstructionID)
	assert.Contains(t, err.Error(), "longer than 70 characters")
}

func TestCheckIsValidTransaction(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	assert.False(t, tx.CheckIsValidTransaction())

	tx.SetBIC("BANKDEFF")
	assert.False(t, tx.CheckIsValidTransaction())

	require.NoError(t, tx.SetIBAN(testIBAN))
	assert.False(t, tx.CheckIsValidTransaction())

	require.NoError(t, tx.SetCreditorName("Acme Corp"))
	assert.True(t, tx.CheckIsValidTransaction())

	require.NoError(t, tx.SetCreditorName(""))
	assert.False(t, tx.CheckIsValidTransaction())
}

func TestElement_Scenario(t *testing.T) {
	tx := newScenarioTransfer(t)
	el := tx.Element()

	assert.Equal(t, "CdtTrfTxInf", el.Name())
	assert.Equal(t, []string{"PmtId", "Amt", "CdtrAgt", "Cdtr", "CdtrAcct", "RmtInf"}, el.ChildNames())

	amt, ok := el.Find("Amt", "InstdAmt")
	require.True(t, ok)
	assert.Equal(t, "12.50", amt.Text())
	ccy, ok := amt.Attr("Ccy")
	require.True(t, ok)
	assert.Equal(t, "EUR", ccy)

	_, ok = el.Find("Cdtr", "PstlAdr")
	assert.False(t, ok)
	_, ok = el.Find("Purp")
	assert.False(t, ok)

	ref, ok := el.Find("RmtInf", "Strd", "CdtrRefInf", "Ref")
	require.True(t, ok)
	assert.Equal(t, "", ref.Text())

	data, err := el.ToXML(false)
	require.NoError(t, err)
	want := `<CdtTrfTxInf>` +
		`<PmtId><InstrId>TX1</InstrId><EndToEndId>E2E1</EndToEndId></PmtId>` +
		`<Amt><InstdAmt Ccy="EUR">12.50</InstdAmt></Amt>` +
		`<CdtrAgt><FinInstnId><BIC>BANKDEFF</BIC></FinInstnId></CdtrAgt>` +
		`<Cdtr><Nm>Acme Corp</Nm></Cdtr>` +
		`<CdtrAcct><Id><IBAN>DE89370400440532013000</IBAN></Id></CdtrAcct>` +
		`<RmtInf><Strd><CdtrRefInf><Ref></Ref></CdtrRefInf><AddtlRmtInf>Invoice 42</AddtlRmtInf></Strd></RmtInf>` +
		`</CdtTrfTxInf>`
	assert.Equal(t, want, string(data))
}

func TestElement_FullTransfer(t *testing.T) {
	tx := newScenarioTransfer(t)
	tx.SetCurrency("eur")
	require.NoError(t, tx.SetCreditorAddressLine("Hauptstrasse 1, 10115 Berlin"))
	require.NoError(t, tx.SetCreditorCountry("DE"))
	require.NoError(t, tx.SetCreditInvoiceReference("RF18539007547034"))
	require.NoError(t, tx.SetCreditInvoiceCode("SUPP"))

	el := tx.Element()
	assert.Equal(t, []string{"PmtId", "Amt", "CdtrAgt", "Cdtr", "CdtrAcct", "RmtInf", "Purp"}, el.ChildNames())

	cdtr, ok := el.Child("Cdtr")
	require.True(t, ok)
	assert.Equal(t, []string{"Nm", "PstlAdr"}, cdtr.ChildNames())

	adr, ok := cdtr.Find("PstlAdr")
	require.True(t, ok)
	assert.Equal(t, []string{"AdrLine", "Ctry"}, adr.ChildNames())

	ref, ok := el.Find("RmtInf", "Strd", "CdtrRefInf", "Ref")
	require.True(t, ok)
	assert.Equal(t, "RF18539007547034", ref.Text())

	strd, ok := el.Find("RmtInf", "Strd")
	require.True(t, ok)
	assert.Equal(t, []string{"CdtrRefInf", "AddtlRmtInf"}, strd.ChildNames())

	cd, ok := el.Find("Purp", "Cd")
	require.True(t, ok)
	assert.Equal(t, "SUPP", cd.Text())
}

func TestElement_PartialPostalAddressOmitted(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		country string
	}{
		{"line only", "Hauptstrasse 1", ""},
		{"country only", "", "DE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := newScenarioTransfer(t)
			require.NoError(t, tx.SetCreditorAddressLine(tt.line))
			require.NoError(t, tx.SetCreditorCountry(tt.country))

			_, ok := tx.Element().Find("Cdtr", "PstlAdr")
			assert.False(t, ok)
		})
	}
}

func TestElement_EmptyTransactionStillSerializes(t *testing.T) {
	tx := sepa.NewCreditTransferTransaction()
	el := tx.Element()

	assert.Equal(t, []string{"PmtId", "Amt", "CdtrAgt", "Cdtr", "CdtrAcct", "RmtInf"}, el.ChildNames())
	iban, ok := el.Find("CdtrAcct", "Id", "IBAN")
	require.True(t, ok)
	assert.Equal(t, "", iban.Text())

	_, err := el.ToXML(true)
	assert.NoError(t, err)
}

func TestElement_Idempotent(t *testing.T) {
	tx := newScenarioTransfer(t)

	first, err := tx.Element().ToXML(true)
	require.NoError(t, err)
	second, err := tx.Element().ToXML(true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, tx.Element(), tx.Element())
}

func TestSimpleXMLElementTransaction_MatchesElement(t *testing.T) {
	tx := newScenarioTransfer(t)

	want, err := tx.Element().ToXML(false)
	require.NoError(t, err)
	got, err := tx.SimpleXMLElementTransaction().ToXML(false)
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
}

func TestElement_SnapshotIsDetached(t *testing.T) {
	tx := newScenarioTransfer(t)
	before := tx.Element()

	require.NoError(t, tx.SetCreditorName("Someone Else"))

	nm, ok := before.Find("Cdtr", "Nm")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", nm.Text())
}

func TestCreditTransferTransaction_ImplementsTransaction(t *testing.T) {
	var tx sepa.Transaction = newScenarioTransfer(t)
	assert.Equal(t, "TX1", tx.InstructionID())
	assert.True(t, tx.CheckIsValidTransaction())
	assert.Equal(t, "CdtTrfTxInf", tx.Element().Name())
}

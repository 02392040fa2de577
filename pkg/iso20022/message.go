package iso20022

// MessageType represents ISO 20022 message types.
type MessageType string

// Payment Initiation, in the versions of the SEPA rulebooks.
const (
	Pain001V03 MessageType = "pain.001.001.03" // CustomerCreditTransferInitiation
	Pain008V02 MessageType = "pain.008.001.02" // CustomerDirectDebitInitiation
)

const namespacePrefix = "urn:iso:std:iso:20022:tech:xsd:"

// Namespace returns the XSD namespace URN of the message type.
func (m MessageType) Namespace() string {
	return namespacePrefix + string(m)
}

// String returns the message identifier, e.g. "pain.001.001.03".
func (m MessageType) String() string {
	return string(m)
}

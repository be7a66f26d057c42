// Package routes provides the Tencent Cloud OCR endpoint and action names
// so callers and the SDK agree on the exact strings sent over the wire.
package routes

// Endpoint and service identifiers.
const (
	// BaseURL is the public OCR endpoint. All actions are POSTed to its root.
	BaseURL = "https://ocr.tencentcloudapi.com"

	// Service is the service name bound into the TC3 credential scope.
	Service = "ocr"

	// DefaultVersion is the OCR API version used when callers supply none.
	DefaultVersion = "2018-11-19"
)

// OCR action names. The X-TC-Action header carries one of these values.
const (
	// GeneralBasicOCR recognizes printed text in general images.
	GeneralBasicOCR = "GeneralBasicOCR"

	// GeneralAccurateOCR is the high-precision variant of GeneralBasicOCR.
	GeneralAccurateOCR = "GeneralAccurateOCR"

	// GeneralHandwritingOCR recognizes handwritten text.
	GeneralHandwritingOCR = "GeneralHandwritingOCR"

	// IDCardOCR recognizes both sides of a mainland ID card.
	IDCardOCR = "IDCardOCR"

	// BankCardOCR recognizes bank card numbers and issuers.
	BankCardOCR = "BankCardOCR"

	// BizLicenseOCR recognizes business licenses.
	BizLicenseOCR = "BizLicenseOCR"

	// LicensePlateOCR recognizes vehicle license plates.
	LicensePlateOCR = "LicensePlateOCR"

	// VatInvoiceOCR recognizes VAT invoices.
	VatInvoiceOCR = "VatInvoiceOCR"

	// TableOCR extracts table structures.
	TableOCR = "TableOCR"

	// QrcodeOCR decodes QR codes and barcodes.
	QrcodeOCR = "QrcodeOCR"
)

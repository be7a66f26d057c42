package sdk

import (
	"context"

	"github.com/ocrsdk/tencentocr/routes"
)

// GeneralBasicOCR recognizes printed text.
//
// Example:
//
//	resp, err := client.GeneralBasicOCR(ctx, sdk.ImageURL("https://example.com/a.png"), sdk.Options{
//	    "LanguageType": "zh",
//	    "region":       "ap-guangzhou",
//	})
func (c *Client) GeneralBasicOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.GeneralBasicOCR, image, opts)
}

// GeneralAccurateOCR is the high-precision printed text recognizer.
func (c *Client) GeneralAccurateOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.GeneralAccurateOCR, image, opts)
}

// GeneralHandwritingOCR recognizes handwriting.
func (c *Client) GeneralHandwritingOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.GeneralHandwritingOCR, image, opts)
}

// IDCardOCR recognizes an ID card. Pass {"CardSide": "FRONT"|"BACK"} in opts.
func (c *Client) IDCardOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.IDCardOCR, image, opts)
}

func (c *Client) BankCardOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.BankCardOCR, image, opts)
}

func (c *Client) BizLicenseOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.BizLicenseOCR, image, opts)
}

func (c *Client) LicensePlateOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.LicensePlateOCR, image, opts)
}

func (c *Client) VatInvoiceOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.VatInvoiceOCR, image, opts)
}

func (c *Client) TableOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.TableOCR, image, opts)
}

func (c *Client) QrcodeOCR(ctx context.Context, image ImageInput, opts Options) (*Response, error) {
	return c.RequestImage(ctx, routes.QrcodeOCR, image, opts)
}

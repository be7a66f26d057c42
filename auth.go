// Package sdk provides a Go client for the Tencent Cloud OCR API with
// TC3-HMAC-SHA256 request signing.
package sdk

import (
	"context"
	"net/http"
)

// SigningStage attaches the TC3 Authorization header to the request in
// place and forwards it. The pipeline always installs it innermost, so the
// signature covers every header set by earlier stages and nothing can change
// the request between signing and dispatch.
//
// A signing failure short-circuits the chain: next is never called.
func SigningStage(signer *Signer) Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
			if err := signer.SignRequest(req); err != nil {
				return nil, err
			}
			return next(ctx, req)
		}
	}
}

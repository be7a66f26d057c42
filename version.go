package sdk

// Version is the published SDK version. It is embedded in X-TC-RequestClient.
// 1.1.0: Add Signer.Verify, TraceStage and zerolog telemetry adapter.
// 1.0.0: Initial TC3-HMAC-SHA256 client with URL/base64 image normalization.
const Version = "1.1.0"

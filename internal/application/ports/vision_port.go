package ports

import "context"

// VisionExtractor is the outbound port to a vision-capable model. Any
// adapter (Anthropic, OpenAI-compatible, Gemini, a test double) satisfies it.
// The context should carry a deadline; calls leave the process.
type VisionExtractor interface {
	// ExtractInvoice sends the invoice image and returns the model's raw text.
	// Adapters own the wire encoding (base64, data URIs, inline parts).
	ExtractInvoice(ctx context.Context, image []byte, mediaType string) (string, error)
}

// Assistant answers a free-form question given a system context.
type Assistant interface {
	Reply(ctx context.Context, system, message string) (string, error)
}

// ImagePreparer converts an upload into a format the model accepts.
// It returns the bytes and media type to send.
type ImagePreparer interface {
	Prepare(image []byte, mediaType string) ([]byte, string, error)
}

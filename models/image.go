package models

// GeneratedImage is the output of an image generation provider.
// Providers return either a hosted URL or the raw bytes.
type GeneratedImage struct {
	URL      string
	Data     []byte
	MIMEType string
}

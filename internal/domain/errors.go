package domain

import "errors"

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generative model failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrIndexNotReady signals that the review index has not been created yet.
	ErrIndexNotReady = errors.New("review index not ready")
)

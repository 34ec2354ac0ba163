package website

import "time"

type Config struct {
	FetchTimeout time.Duration
	// TextLimit bounds the page text embedded in the extraction prompt.
	TextLimit int
	// GenerateTimeout bounds the model call for one extraction.
	GenerateTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		FetchTimeout:    10 * time.Second,
		TextLimit:       4000,
		GenerateTimeout: 30 * time.Second,
	}
}

package config

import "time"

const (
	DefaultTokenIssuer    = "secure-vault"
	DefaultTokenDuration  = 7 * 24 * time.Hour
	DefaultLogLevel       = "info"
	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultIterations     = 100000
	DefaultClipboardClear = 15 * time.Second
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
		},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://" + DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Crypto: Crypto{
			Iterations: DefaultIterations,
		},
		Clipboard: Clipboard{
			ClearAfter: DefaultClipboardClear,
		},
	}
}

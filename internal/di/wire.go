//go:build wireinject
// +build wireinject

package di

import (
	"QuoteVault/pkg/config"
	"QuoteVault/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideKeyValue,
		ProvideQuoteSource,
		ProvideNewsSource,

		// Stores
		ProvideIndicatorStore,
		ProvideFavoritesStore,
		ProvideWalletStore,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

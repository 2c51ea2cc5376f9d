package services

import (
	portsrepo "github.com/nabung-ai/tabungan_backend/internal/core/ports/repositories"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	oracle portssvc.MoneyOracle,
	publisher portssvc.TransactionEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(
		repos.LedgerRepo,
		oracle,
		WithTransactionEventPublisher(publisher),
		WithOracleTimeout(cfg.OracleTimeout),
		WithMaxImagePayload(cfg.MaxImagePayload),
	)

	return container
}

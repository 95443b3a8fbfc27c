package service

import (
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
)

// Registry bundles one service per entity, all sharing a single API client.
type Registry struct {
	Tasks      *Tasks
	Privileges *Privileges
	Violations *Violations
	Contracts  *Contracts
	Rules      *Rules
	Wallets    *Wallets
	Analytics  *Analytics
}

func NewRegistry(client *api.Client, logger *slog.Logger) *Registry {
	return &Registry{
		Tasks:      NewTasks(client, logger.With("service", "tasks")),
		Privileges: NewPrivileges(client, logger.With("service", "privileges")),
		Violations: NewViolations(client, logger.With("service", "violations")),
		Contracts:  NewContracts(client, logger.With("service", "contracts")),
		Rules:      NewRules(client, logger.With("service", "rules")),
		Wallets:    NewWallets(client, logger.With("service", "wallets")),
		Analytics:  NewAnalytics(client, logger.With("service", "analytics")),
	}
}

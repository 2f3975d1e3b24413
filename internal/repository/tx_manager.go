package repository

import "context"

// TxRepos exposes the repositories bound to a single transaction.
type TxRepos interface {
	Orders() OrderRepository
	Products() ProductRepository
	Inventory() InventoryRepository
}

// TransactionManager runs fn inside a transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(repos TxRepos) error) error
}

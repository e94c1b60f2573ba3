package sheets

import (
	"context"

	"neotrack/internal/core"
)

// Ports for the spreadsheet mirror.
type (
	TransactionWriter interface {
		// AppendTransaction adds one row for t. Appending a transaction that
		// is already mirrored is a no-op returning the existing row.
		AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	TransactionDeleter interface {
		// DeleteTransaction removes the row for id and reports whether one existed.
		DeleteTransaction(ctx context.Context, id int64) (found bool, err error)
	}

	// IDLister reports which transactions are already mirrored.
	IDLister interface {
		ListIDs(ctx context.Context) (map[int64]struct{}, error)
	}

	Mirror interface {
		TransactionWriter
		TransactionDeleter
		IDLister
	}
)

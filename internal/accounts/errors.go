package accounts

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrNotSubscribed reports an accessor used before Subscribe.
var ErrNotSubscribed = errors.New("subscriber is not subscribed")

// AccountNotFoundError reports that no value has ever been loaded for an
// account. This is distinct from the account not existing on the ledger,
// which is a valid terminal state.
type AccountNotFoundError struct {
	Kind    string
	Address solana.PublicKey
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("%s account not loaded: %s", e.Kind, e.Address)
}

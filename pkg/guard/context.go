package guard

import "context"

// accountCtxKey is the context key for the authenticated account.
type accountCtxKey struct{}

// SetAccountToContext stores the authenticated account in the context.
// The authentication layer calls this before the guard middleware runs.
func SetAccountToContext(ctx context.Context, account *Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, account)
}

// GetAccountFromContext retrieves the authenticated account from the
// context. Returns false when no account was set.
func GetAccountFromContext(ctx context.Context) (*Account, bool) {
	account, ok := ctx.Value(accountCtxKey{}).(*Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}

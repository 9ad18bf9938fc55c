package launch

import "context"

// FirstLaunchKey is the app_state key used by StoreFlag.
const FirstLaunchKey = "first_launch"

// KeyValueFlags is the part of the task store StoreFlag needs.
type KeyValueFlags interface {
	SetOnce(ctx context.Context, key string) (bool, error)
	ResetFlag(ctx context.Context, key string) error
}

// StoreFlag keeps the flag in the task database. Deleting the database file
// brings back the first run.
type StoreFlag struct {
	store KeyValueFlags
	key   string
}

// NewStoreFlag returns a Flag stored under FirstLaunchKey.
func NewStoreFlag(store KeyValueFlags) *StoreFlag {
	return &StoreFlag{store: store, key: FirstLaunchKey}
}

func (f *StoreFlag) SetOnce(ctx context.Context) (bool, error) {
	return f.store.SetOnce(ctx, f.key)
}

func (f *StoreFlag) Reset(ctx context.Context) error {
	return f.store.ResetFlag(ctx, f.key)
}

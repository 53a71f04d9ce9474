//go:build !sqlite

package store

func newSQLiteStore(string) (Store, error) {
	return nil, ErrSQLiteUnavailable
}

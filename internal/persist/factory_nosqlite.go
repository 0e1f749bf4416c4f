//go:build !sqlite

package persist

import "fmt"

func newSQLiteStore(_ string) (Store, error) {
	return nil, fmt.Errorf("persist: sqlite backend unavailable in this build; rebuild with -tags sqlite")
}

package main

import (
	"github.com/beansdev/beans/internal/index"
	"github.com/beansdev/beans/internal/types"
)

// freshIndex loads the store's index, rebuilding it if stale. Staleness
// is checked against active bean files only (includeArchive=false).
func freshIndex(app *appContext) (*types.Index, []index.Warning, error) {
	return index.EnsureFresh(app.ctx, app.store, false)
}

// Package ports defines what the representing countries domain needs from
// other bounded contexts.
package ports

import "context"

// StageCatalog answers whether a stage name exists in the global catalog.
// Names are passed already normalised.
type StageCatalog interface {
	Exists(ctx context.Context, name string) (bool, error)
}

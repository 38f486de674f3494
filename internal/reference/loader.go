package reference

import (
	"context"
	"fmt"

	"gstaudit/internal/config"
	"gstaudit/internal/domain"
	"gstaudit/internal/port"
)

// Load builds the catalog from the configured source. repo is only consulted
// for the postgres source and may be nil otherwise. The none source yields an
// empty catalog, leaving the keyword rules to classify every item.
func Load(ctx context.Context, cfg config.ReferenceConfig, repo port.GSTRateRepository) (*Catalog, error) {
	switch cfg.Source {
	case domain.ReferenceSourcePostgres:
		if repo == nil {
			return nil, fmt.Errorf("%w: postgres source without a repository", domain.ErrReferenceUnavailable)
		}
		c, err := FromRepository(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReferenceUnavailable, err)
		}
		return c, nil
	case domain.ReferenceSourceXLSX:
		rows, err := LoadWorkbook(cfg.XLSXPath, cfg.SheetName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrReferenceUnavailable, err)
		}
		return NewCatalog(rows), nil
	case domain.ReferenceSourceNone, "":
		return NewCatalog(nil), nil
	default:
		return nil, fmt.Errorf("unknown reference source %q", cfg.Source)
	}
}

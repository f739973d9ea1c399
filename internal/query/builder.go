package query

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rickgao/disclosure-data/internal/identifier"
	"github.com/rickgao/disclosure-data/internal/model"
)

// HoldingsPageCap is the maximum number of records the 13F holdings search
// returns per call. Larger requests are silently truncated upstream.
const HoldingsPageCap = 50

// PeriodLayout is the layout of a period of report.
const PeriodLayout = "2006-01-02"

// Upstream paths.
const (
	PoliticianTradesPath      = "/beta/bulk/congresstrading"
	InsiderTransactionsPath   = "/insider-trading"
	InstitutionalHoldingsPath = "/form-13f/holdings"
)

var (
	ErrEmptyIdentifier = errors.New("empty identifier")
	ErrIdentifierKind  = errors.New("identifier kind does not match dataset")
	ErrPeriodRequired  = errors.New("period of report is required for holdings")
)

// Options tunes dataset-specific query parameters.
type Options struct {
	// PageSize is the requested holdings page size. 0 or anything above
	// HoldingsPageCap is clamped to HoldingsPageCap.
	PageSize int

	// Period is the 13F period of report (YYYY-MM-DD).
	Period string
}

// Build constructs the query for id against dataset kind.
func Build(id identifier.Identifier, kind model.DatasetKind, opts Options) (model.Query, error) {
	if id.Empty() {
		return model.Query{}, ErrEmptyIdentifier
	}
	if id.Kind() != kind.IdentifierKind() {
		return model.Query{}, fmt.Errorf("%w: %s for %s", ErrIdentifierKind, id.Kind(), kind)
	}

	switch kind {
	case model.PoliticianTrades:
		return politicianTrades(id), nil
	case model.InsiderTransactions:
		return insiderTransactions(id), nil
	case model.InstitutionalHoldings:
		return institutionalHoldings(id, opts)
	default:
		return model.Query{}, fmt.Errorf("unsupported dataset %s", kind)
	}
}

func politicianTrades(id identifier.Identifier) model.Query {
	return model.Query{
		Dataset: model.PoliticianTrades,
		Service: model.Quiver,
		Method:  http.MethodGet,
		Path:    PoliticianTradesPath,
		Params:  []model.Param{{Key: "representative", Value: id.Normalized()}},
	}
}

func insiderTransactions(id identifier.Identifier) model.Query {
	return model.Query{
		Dataset: model.InsiderTransactions,
		Service: model.SECAPI,
		Method:  http.MethodPost,
		Path:    InsiderTransactionsPath,
		Filter: model.Filter{Terms: []model.Term{
			{Field: "issuer.tradingSymbol", Value: id.Normalized()},
		}},
		ResultPath: "transactions",
	}
}

func institutionalHoldings(id identifier.Identifier, opts Options) (model.Query, error) {
	if opts.Period == "" {
		return model.Query{}, ErrPeriodRequired
	}
	if _, err := time.Parse(PeriodLayout, opts.Period); err != nil {
		return model.Query{}, fmt.Errorf("invalid period of report %q: %w", opts.Period, err)
	}

	return model.Query{
		Dataset: model.InstitutionalHoldings,
		Service: model.SECAPI,
		Method:  http.MethodPost,
		Path:    InstitutionalHoldingsPath,
		Filter: model.Filter{Terms: []model.Term{
			{Field: "cik", Value: id.Padded(identifier.RegistryWidth)},
			{Field: "periodOfReport", Value: opts.Period},
		}},
		From:       0,
		Size:       PageSize(opts.PageSize),
		Sort:       []model.SortKey{{Field: "filedAt", Descending: true}},
		ResultPath: "data",
		PageCap:    HoldingsPageCap,
	}, nil
}

// PageSize clamps a requested holdings page size to (0, HoldingsPageCap].
func PageSize(requested int) int {
	if requested <= 0 || requested > HoldingsPageCap {
		return HoldingsPageCap
	}
	return requested
}

package model

import (
	"fmt"
	"strings"

	"github.com/rickgao/disclosure-data/internal/identifier"
)

// DatasetKind selects the disclosure dataset a lookup targets.
type DatasetKind int

const (
	PoliticianTrades DatasetKind = iota
	InsiderTransactions
	InstitutionalHoldings
)

// DatasetKinds lists every dataset in display order.
var DatasetKinds = []DatasetKind{PoliticianTrades, InsiderTransactions, InstitutionalHoldings}

func (k DatasetKind) String() string {
	switch k {
	case PoliticianTrades:
		return "politicians"
	case InsiderTransactions:
		return "insiders"
	case InstitutionalHoldings:
		return "holdings"
	default:
		return fmt.Sprintf("dataset(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k DatasetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseDatasetKind accepts the String form plus a few common aliases.
func ParseDatasetKind(s string) (DatasetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "politicians", "politician", "congress":
		return PoliticianTrades, nil
	case "insiders", "insider", "form4":
		return InsiderTransactions, nil
	case "holdings", "13f", "institutions":
		return InstitutionalHoldings, nil
	default:
		return 0, fmt.Errorf("unknown dataset %q", s)
	}
}

// IdentifierKind returns the kind of identifier the dataset is keyed by.
func (k DatasetKind) IdentifierKind() identifier.Kind {
	switch k {
	case InsiderTransactions:
		return identifier.TickerSymbol
	case InstitutionalHoldings:
		return identifier.RegistryID
	default:
		return identifier.PersonName
	}
}

// Service returns the upstream API that serves the dataset.
func (k DatasetKind) Service() Service {
	if k == PoliticianTrades {
		return Quiver
	}
	return SECAPI
}

// Service names an upstream data API.
type Service int

const (
	Quiver Service = iota // Quiver Quantitative congressional trading
	SECAPI                // sec-api.io Form 4 and 13F search
)

func (s Service) String() string {
	switch s {
	case Quiver:
		return "quiver"
	case SECAPI:
		return "sec-api"
	default:
		return fmt.Sprintf("service(%d)", int(s))
	}
}

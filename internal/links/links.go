// Package links builds deep links into third-party disclosure sites for an
// identifier. It needs no credentials and makes no calls.
package links

import (
	"net/url"

	"github.com/rickgao/disclosure-data/internal/identifier"
)

// Link is a labelled outbound URL.
type Link struct {
	Site string `json:"site"`
	URL  string `json:"url"`
}

// Filer is a well-known 13F filer.
type Filer struct {
	CIK  string `json:"cik"`
	Name string `json:"name"`
}

// For returns the deep links for id. An empty identifier has none.
func For(id identifier.Identifier) []Link {
	if id.Empty() {
		return nil
	}

	switch id.Kind() {
	case identifier.PersonName:
		q := id.Transport()
		return []Link{
			{Site: "CapitolTrades", URL: "https://www.capitoltrades.com/politicians?search=" + q},
			{Site: "Quiver Quantitative", URL: "https://www.quiverquant.com/congresstrading/search?q=" + q},
		}
	case identifier.TickerSymbol:
		t := id.Normalized()
		return []Link{
			{Site: "InsiderScreener", URL: "https://www.insiderscreener.com/en/company/" + url.PathEscape(t)},
			{Site: "Quiver Quantitative", URL: "https://www.quiverquant.com/insiders/search?ticker=" + url.QueryEscape(t)},
		}
	case identifier.RegistryID:
		// WhaleWisdom resolves filers by the unpadded CIK.
		return []Link{
			{Site: "WhaleWisdom", URL: "https://whalewisdom.com/filer/" + id.Stripped()},
			{Site: "Fintel", URL: "https://fintel.io/i/" + id.AsEntered()},
		}
	}
	return nil
}

// Resources returns general-purpose disclosure resources.
func Resources() []Link {
	return []Link{
		{Site: "SEC EDGAR", URL: "https://www.sec.gov/edgar/search"},
		{Site: "Unusual Whales Politics", URL: "https://unusualwhales.com/politics"},
	}
}

// PopularFilers returns example CIKs of large institutional filers.
func PopularFilers() []Filer {
	return []Filer{
		{CIK: "0001067983", Name: "Berkshire Hathaway"},
		{CIK: "0001350694", Name: "Bridgewater Associates"},
		{CIK: "0001364742", Name: "BlackRock"},
		{CIK: "0000102909", Name: "Vanguard Group"},
	}
}

package links

import (
	"testing"

	"github.com/rickgao/disclosure-data/internal/identifier"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind identifier.Kind
		want []string
	}{
		{
			name: "name",
			raw:  "  Nancy   Pelosi ",
			kind: identifier.PersonName,
			want: []string{
				"https://www.capitoltrades.com/politicians?search=Nancy+Pelosi",
				"https://www.quiverquant.com/congresstrading/search?q=Nancy+Pelosi",
			},
		},
		{
			name: "ticker",
			raw:  "tsla",
			kind: identifier.TickerSymbol,
			want: []string{
				"https://www.insiderscreener.com/en/company/TSLA",
				"https://www.quiverquant.com/insiders/search?ticker=TSLA",
			},
		},
		{
			name: "registry id",
			raw:  "0001067983",
			kind: identifier.RegistryID,
			want: []string{
				"https://whalewisdom.com/filer/1067983",
				"https://fintel.io/i/0001067983",
			},
		},
		{name: "empty name", raw: "   ", kind: identifier.PersonName},
		{name: "inert ticker", raw: "$$", kind: identifier.TickerSymbol},
		{name: "inert cik", raw: "abc", kind: identifier.RegistryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(identifier.Normalize(tt.raw, tt.kind))
			if len(got) != len(tt.want) {
				t.Fatalf("For(%q) returned %d links, want %d", tt.raw, len(got), len(tt.want))
			}
			for i, l := range got {
				if l.URL != tt.want[i] {
					t.Errorf("link[%d] = %q, want %q", i, l.URL, tt.want[i])
				}
				if l.Site == "" {
					t.Errorf("link[%d] has no site", i)
				}
			}
		})
	}
}

func TestPopularFilers(t *testing.T) {
	for _, f := range PopularFilers() {
		id := identifier.Normalize(f.CIK, identifier.RegistryID)
		if id.Padded(identifier.RegistryWidth) != f.CIK {
			t.Errorf("%s CIK %q is not a padded registry id", f.Name, f.CIK)
		}
	}
}

func TestResources(t *testing.T) {
	if got := len(Resources()); got != 2 {
		t.Errorf("len(Resources()) = %d, want 2", got)
	}
}

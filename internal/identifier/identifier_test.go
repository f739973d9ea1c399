package identifier

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw           string
		wantNorm      string
		wantTransport string
		wantEmpty     bool
	}{
		{"  Nancy Pelosi ", "Nancy Pelosi", "Nancy+Pelosi", false},
		{"Marjorie   Taylor\tGreene", "Marjorie Taylor Greene", "Marjorie+Taylor+Greene", false},
		{"Beto O'Rourke", "Beto O'Rourke", "Beto+O%27Rourke", false},
		{"", "", "", true},
		{"   \t ", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id := Normalize(tt.raw, PersonName)
			if id.Normalized() != tt.wantNorm {
				t.Errorf("Normalized() = %q, want %q", id.Normalized(), tt.wantNorm)
			}
			if id.Transport() != tt.wantTransport {
				t.Errorf("Transport() = %q, want %q", id.Transport(), tt.wantTransport)
			}
			if id.Empty() != tt.wantEmpty {
				t.Errorf("Empty() = %v, want %v", id.Empty(), tt.wantEmpty)
			}
			if id.Raw() != tt.raw {
				t.Errorf("Raw() = %q, want %q", id.Raw(), tt.raw)
			}
		})
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"tsla", "TSLA"},
		{"  aapl ", "AAPL"},
		{"NVDA", "NVDA"},
		{"brk.b", "BRK.B"},
		{"bf-b", "BF-B"},
		{"ＴＳＬＡ", "TSLA"},
		{"", ""},
		{"  ", ""},
		{"TS LA", ""},
		{"$TSLA", ""},
		{".B", ""},
		{"BRK.", ""},
		{"BRK..B", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id := Normalize(tt.raw, TickerSymbol)
			if id.Normalized() != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, id.Normalized(), tt.want)
			}
			if id.Empty() != (tt.want == "") {
				t.Errorf("Empty() = %v, want %v", id.Empty(), tt.want == "")
			}
		})
	}
}

func TestNormalizeRegistryID(t *testing.T) {
	tests := []struct {
		raw          string
		wantEntered  string
		wantStripped string
		wantPadded   string
	}{
		{"0001067983", "0001067983", "1067983", "0001067983"},
		{" 1067983 ", "1067983", "1067983", "0001067983"},
		{"102909", "102909", "102909", "0000102909"},
		{"0000", "0000", "0", "0000000000"},
		{"12345678901", "12345678901", "12345678901", "12345678901"},
		{"", "", "", ""},
		{"CIK1067983", "", "", ""},
		{"-1067983", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id := Normalize(tt.raw, RegistryID)
			if id.AsEntered() != tt.wantEntered {
				t.Errorf("AsEntered() = %q, want %q", id.AsEntered(), tt.wantEntered)
			}
			if id.Stripped() != tt.wantStripped {
				t.Errorf("Stripped() = %q, want %q", id.Stripped(), tt.wantStripped)
			}
			if got := id.Padded(RegistryWidth); got != tt.wantPadded {
				t.Errorf("Padded(%d) = %q, want %q", RegistryWidth, got, tt.wantPadded)
			}
		})
	}
}

func TestRegistryAccessorsOnOtherKinds(t *testing.T) {
	id := Normalize("tsla", TickerSymbol)
	if id.AsEntered() != "" || id.Stripped() != "" || id.Padded(RegistryWidth) != "" {
		t.Errorf("registry accessors should be empty for %s", id)
	}
}

func TestZeroValueIsInert(t *testing.T) {
	var id Identifier
	if !id.Empty() {
		t.Error("zero Identifier should be empty")
	}
}

func TestKindString(t *testing.T) {
	if PersonName.String() != "name" || TickerSymbol.String() != "ticker" || RegistryID.String() != "cik" {
		t.Errorf("unexpected kind names: %s %s %s", PersonName, TickerSymbol, RegistryID)
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q, want unknown", Kind(42).String())
	}
}

package assetpkg

import "testing"

func TestIsSupportedClass(t *testing.T) {
	testCases := []struct {
		class string
		want  bool
	}{
		{Equity, true},
		{Crypto, true},
		{"Bond", false},
		{"", false},
		{"equity", false},
	}

	for _, tc := range testCases {
		if got := IsSupportedClass(tc.class); got != tc.want {
			t.Errorf("IsSupportedClass(%q) = %v, want %v", tc.class, got, tc.want)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	testCases := []struct {
		class  string
		symbol string
		want   string
	}{
		{Equity, "aapl", "AAPL"},
		{Equity, " MSFT ", "MSFT"},
		{Crypto, "Bitcoin", "bitcoin"},
		{Crypto, "ETHEREUM", "ethereum"},
	}

	for _, tc := range testCases {
		if got := NormalizeSymbol(tc.class, tc.symbol); got != tc.want {
			t.Errorf("NormalizeSymbol(%q, %q) = %q, want %q", tc.class, tc.symbol, got, tc.want)
		}
	}
}

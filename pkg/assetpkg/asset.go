// Package assetpkg provides common asset class related functionality for apps.
package assetpkg

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Constants for all supported asset classes.
const (
	Equity = "Equity"
	Crypto = "Crypto"
)

// SupportedClasses holds all the supported asset classes.
var SupportedClasses = []string{
	Equity,
	Crypto,
}

// IsSupportedClass returns true if the asset class is supported.
func IsSupportedClass(class string) bool {
	for _, c := range SupportedClasses {
		if c == class {
			return true
		}
	}

	return false
}

// NormalizeSymbol folds a symbol into its canonical form:
// crypto asset ids are lowercase, equity tickers are uppercase.
func NormalizeSymbol(class, symbol string) string {
	symbol = strings.TrimSpace(symbol)

	if class == Crypto {
		return strings.ToLower(symbol)
	}

	return strings.ToUpper(symbol)
}

// ValidClass validates the asset class field of incoming requests.
var ValidClass validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if class, ok := fieldLevel.Field().Interface().(string); ok {
		return IsSupportedClass(class)
	}

	return false
}

package market

import (
	"fmt"
	"strings"
)

// QuoteToAccountRate returns the exchange rate the FX sizer expects: units of
// the pair's quote currency per unit of account currency.
//
// price is the pair's current price. When the quote currency is the account
// currency the rate is 1. When the base currency is the account currency
// (USDJPY in a USD account) the pair's own price is the rate.
func QuoteToAccountRate(symbol string, specs FXSpecs, accountCurrency string, price float64) (float64, error) {
	sym := NormalizeSymbol(symbol)
	account := strings.ToUpper(accountCurrency)

	if specs.QuoteCurrency == account {
		return 1.0, nil
	}

	if len(sym) == 6 && sym[:3] == account {
		if price <= 0 {
			return 0, fmt.Errorf("price for %s must be positive", sym)
		}
		return price, nil
	}

	// Cross pairs (EURGBP in a USD account) need a second quote.
	return 0, fmt.Errorf(
		"cross conversion not implemented for %s → %s",
		specs.QuoteCurrency,
		account,
	)
}

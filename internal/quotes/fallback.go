package quotes

// Fixed fallback quotes used when the API is unreachable or unconfigured.
// The values only have to be plausible; pages must render without live
// market data.
var (
	fallbackRates = map[string]float64{
		"USD": 80.0,
		"EUR": 90.0,
		"GBP": 100.0,
	}

	fallbackPrices = map[string]float64{
		"AAPL":  150.0,
		"AMZN":  130.0,
		"GOOGL": 140.0,
		"MSFT":  300.0,
		"TSLA":  200.0,
	}
)

// FallbackRate returns the fixed rate for a currency, 1.0 for unknown ones.
func FallbackRate(currency string) float64 {
	if rate, ok := fallbackRates[currency]; ok {
		return rate
	}
	return 1.0
}

// FallbackRates builds the fallback rate list. The base currency is skipped
// entirely, mirroring the live path where it never reaches the API.
func FallbackRates(currencies []string) []Rate {
	rates := make([]Rate, 0, len(currencies))
	for _, c := range currencies {
		if c == BaseCurrency {
			continue
		}
		rates = append(rates, Rate{Currency: c, Rate: FallbackRate(c)})
	}
	return rates
}

// FallbackStockPrice returns the fixed price for a ticker, 100.0 for
// unknown ones.
func FallbackStockPrice(stock string) float64 {
	if price, ok := fallbackPrices[stock]; ok {
		return price
	}
	return 100.0
}

// FallbackStockPrices builds the fallback price list.
func FallbackStockPrices(stocks []string) []StockPrice {
	prices := make([]StockPrice, 0, len(stocks))
	for _, s := range stocks {
		prices = append(prices, StockPrice{Stock: s, Price: FallbackStockPrice(s)})
	}
	return prices
}

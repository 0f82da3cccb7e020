package dashboard

import "strings"

// Ticker is one entry in the static search universe.
type Ticker struct {
	Symbol string
	Name   string
}

// maxSuggestions caps the autocomplete dropdown.
const maxSuggestions = 5

// universe is the static list backing ticker search. Symbol-prefix matches
// rank before company-name matches; within each group the list order holds.
var universe = []Ticker{
	{"AAPL", "Apple"},
	{"MSFT", "Microsoft"},
	{"GOOGL", "Alphabet"},
	{"AMZN", "Amazon"},
	{"NVDA", "NVIDIA"},
	{"META", "Meta Platforms"},
	{"TSLA", "Tesla"},
	{"AVGO", "Broadcom"},
	{"AMD", "Advanced Micro Devices"},
	{"INTC", "Intel"},
	{"QCOM", "Qualcomm"},
	{"TXN", "Texas Instruments"},
	{"MU", "Micron Technology"},
	{"AMAT", "Applied Materials"},
	{"ORCL", "Oracle"},
	{"CRM", "Salesforce"},
	{"ADBE", "Adobe"},
	{"NOW", "ServiceNow"},
	{"IBM", "IBM"},
	{"CSCO", "Cisco Systems"},
	{"ACN", "Accenture"},
	{"SNOW", "Snowflake"},
	{"PLTR", "Palantir"},
	{"NFLX", "Netflix"},
	{"DIS", "Walt Disney"},
	{"CMCSA", "Comcast"},
	{"TMUS", "T-Mobile US"},
	{"VZ", "Verizon"},
	{"T", "AT&T"},
	{"JPM", "JPMorgan Chase"},
	{"BAC", "Bank of America"},
	{"WFC", "Wells Fargo"},
	{"C", "Citigroup"},
	{"GS", "Goldman Sachs"},
	{"MS", "Morgan Stanley"},
	{"SCHW", "Charles Schwab"},
	{"BLK", "BlackRock"},
	{"BX", "Blackstone"},
	{"V", "Visa"},
	{"MA", "Mastercard"},
	{"AXP", "American Express"},
	{"PYPL", "PayPal"},
	{"COF", "Capital One"},
	{"BRK.B", "Berkshire Hathaway"},
	{"UNH", "UnitedHealth"},
	{"JNJ", "Johnson & Johnson"},
	{"LLY", "Eli Lilly"},
	{"PFE", "Pfizer"},
	{"MRK", "Merck"},
	{"ABBV", "AbbVie"},
	{"BMY", "Bristol-Myers Squibb"},
	{"AMGN", "Amgen"},
	{"GILD", "Gilead Sciences"},
	{"TMO", "Thermo Fisher"},
	{"ABT", "Abbott Laboratories"},
	{"MDT", "Medtronic"},
	{"ISRG", "Intuitive Surgical"},
	{"CVS", "CVS Health"},
	{"CI", "Cigna"},
	{"XOM", "Exxon Mobil"},
	{"CVX", "Chevron"},
	{"COP", "ConocoPhillips"},
	{"SLB", "Schlumberger"},
	{"EOG", "EOG Resources"},
	{"OXY", "Occidental Petroleum"},
	{"PSX", "Phillips 66"},
	{"VLO", "Valero Energy"},
	{"KMI", "Kinder Morgan"},
	{"BA", "Boeing"},
	{"CAT", "Caterpillar"},
	{"DE", "Deere"},
	{"GE", "GE Aerospace"},
	{"HON", "Honeywell"},
	{"LMT", "Lockheed Martin"},
	{"RTX", "RTX"},
	{"NOC", "Northrop Grumman"},
	{"UNP", "Union Pacific"},
	{"UPS", "United Parcel Service"},
	{"FDX", "FedEx"},
	{"MMM", "3M"},
	{"EMR", "Emerson Electric"},
	{"ETN", "Eaton"},
	{"WM", "Waste Management"},
	{"PG", "Procter & Gamble"},
	{"KO", "Coca-Cola"},
	{"PEP", "PepsiCo"},
	{"COST", "Costco"},
	{"WMT", "Walmart"},
	{"TGT", "Target"},
	{"HD", "Home Depot"},
	{"LOW", "Lowe's"},
	{"MCD", "McDonald's"},
	{"SBUX", "Starbucks"},
	{"NKE", "Nike"},
	{"MDLZ", "Mondelez"},
	{"CL", "Colgate-Palmolive"},
	{"KHC", "Kraft Heinz"},
	{"MO", "Altria"},
	{"F", "Ford Motor"},
	{"GM", "General Motors"},
	{"UBER", "Uber Technologies"},
	{"ABNB", "Airbnb"},
}

// DefaultWatchlist returns the symbols the snapshot view tracks.
func DefaultWatchlist() []string {
	return []string{
		"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META",
		"JPM", "UNH", "XOM", "CAT", "KO", "INTC",
	}
}

// LookupName returns the universe company name for a symbol, or "" when the
// symbol is not listed.
func LookupName(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, t := range universe {
		if t.Symbol == symbol {
			return t.Name
		}
	}
	return ""
}

// Suggest returns up to five universe entries matching the query,
// case-insensitively: symbol prefix matches first, then company name
// substring matches. An empty query matches nothing.
func Suggest(query string) []Ticker {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	upper := strings.ToUpper(query)
	lower := strings.ToLower(query)

	var out []Ticker
	seen := make(map[string]bool)
	for _, t := range universe {
		if strings.HasPrefix(t.Symbol, upper) {
			out = append(out, t)
			seen[t.Symbol] = true
			if len(out) == maxSuggestions {
				return out
			}
		}
	}
	for _, t := range universe {
		if seen[t.Symbol] {
			continue
		}
		if strings.Contains(strings.ToLower(t.Name), lower) {
			out = append(out, t)
			if len(out) == maxSuggestions {
				return out
			}
		}
	}
	return out
}

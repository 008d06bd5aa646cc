package models

// Списки инструментов по умолчанию. OTC идут через generic-провайдер,
// REAL частично через крипто-стрим.
var OTCPairs = []string{
	"AUDCAD_otc", "AUDJPY_otc", "AUDNZD_otc", "AUDUSD_otc", "BRLUSD_otc",
	"CADCHF_otc", "CADJPY_otc", "CHFJPY_otc", "EURAUD_otc", "EURCAD_otc",
	"EURCHF_otc", "EURGBP_otc", "EURJPY_otc", "EURNZD_otc", "EURSGD_otc",
	"EURUSD_otc", "GBPAUD_otc", "GBPCAD_otc", "GBPCHF_otc", "GBPJPY_otc",
	"GBPUSD_otc", "NZDUSD_otc", "USDARS_otc", "USDBDT_otc", "USDCAD_otc",
	"USDCHF_otc", "USDEGP_otc", "USDGBP_otc", "USDIDR_otc", "USDINR_otc",
	"USDJPY_otc", "USDMXN_otc", "USDNGN_otc", "USDPKR_otc", "USDTRY_otc",
	"USDZAR_otc", "USDPHP_otc", "BTCUSD_otc", "BCHUSD_otc", "ARBUSD_otc",
	"ZECUSD_otc", "ATOUSD_otc", "AXSUSD_otc", "XAUUSD_otc", "XAGUSD_otc",
	"USCrude_otc", "UKBrent_otc", "FLOUSD_otc", "AXP_otc", "PFE_otc",
	"INTC_otc", "JNJ_otc", "MCD_otc", "FB_otc", "BA_otc", "MSFT_otc",
}

var RealPairs = []string{
	"EUR/USD", "GBP/USD", "USD/JPY", "AUD/USD",
	"USD/CAD", "USD/CHF", "NZD/USD", "EUR/JPY",
	"GBP/JPY", "EUR/GBP", "AUD/JPY", "XAU/USD",
	"BTC/USDT", "ETH/USDT", "BNB/USDT", "SOL/USDT",
}

// Watchlist — дефолтный список инструментов рынка.
func Watchlist(market string) []string {
	if market == "REAL" {
		return RealPairs
	}
	return OTCPairs
}

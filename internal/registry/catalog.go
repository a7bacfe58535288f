package registry

var (
	sortDirections = []string{"asc", "desc"}

	quoteIntervals = []string{
		"5m", "10m", "15m", "30m", "45m",
		"1h", "2h", "3h", "4h", "6h", "12h", "24h",
		"1d", "2d", "3d", "7d", "14d", "15d", "30d", "60d", "90d", "365d",
		"hourly", "daily", "weekly", "monthly", "yearly",
	}
)

// dexPairParams are shared by the DEX pair quote, OHLCV and trade endpoints.
func dexPairParams() []Param {
	return []Param{
		String("contract_address"),
		String("network_id"),
		String("network_slug"),
		String("aux"),
		String("convert_id"),
		String("skip_invalid"),
		String("reverse_order"),
	}
}

func pageParams() []Param {
	return []Param{
		Number("start"),
		Number("limit"),
	}
}

// Catalog returns the full table of CoinMarketCap endpoints. Each call
// returns a fresh slice.
func Catalog() []ToolDefinition {
	defs := make([]ToolDefinition, 0, 64)
	defs = append(defs, basicTools()...)
	defs = append(defs, hobbyistTools()...)
	defs = append(defs, startupTools()...)
	defs = append(defs, standardTools()...)
	defs = append(defs, enterpriseTools()...)
	return defs
}

func basicTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "cryptoCategories",
			Description: "Returns information about all coin categories available on CoinMarketCap.",
			Path:        "/v1/cryptocurrency/categories",
			Tier:        Basic,
			Params: []Param{
				Number("start"),
				Number("limit"),
				String("id"),
				String("slug"),
				String("symbol"),
			},
		},
		{
			Name:        "cryptoCategory",
			Description: "Returns information about a single coin category on CoinMarketCap.",
			Path:        "/v1/cryptocurrency/category",
			Tier:        Basic,
			Params: []Param{
				String("id", Required()),
				Number("start"),
				Number("limit"),
				String("convert"),
				String("convert_id"),
			},
		},
		{
			Name:        "cryptoCurrencyMap",
			Description: "Returns a mapping of all cryptocurrencies to unique CoinMarketCap IDs.",
			Path:        "/v1/cryptocurrency/map",
			Tier:        Basic,
			Params: []Param{
				String("listing_status", DefaultValue("active")),
				Number("start", DefaultValue(1)),
				Number("limit", DefaultValue(100)),
				String("sort", DefaultValue("id")),
				String("symbol"),
				String("aux"),
			},
		},
		{
			Name:        "getCryptoMetadata",
			Description: "Returns all static metadata for one or more cryptocurrencies including logo, description, and website URLs.",
			Path:        "/v2/cryptocurrency/info",
			Tier:        Basic,
			Params: []Param{
				String("symbol"),
				String("id"),
				String("slug"),
				String("address"),
				String("aux"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "allCryptocurrencyListings",
			Description: "Returns a paginated list of all active cryptocurrencies with latest market data.",
			Path:        "/v1/cryptocurrency/listings/latest",
			Tier:        Basic,
			Params: []Param{
				Number("start"),
				Number("limit", Min(1), Max(5000)),
				Number("price_min"),
				Number("price_max"),
				Number("market_cap_min"),
				Number("market_cap_max"),
				Number("volume_24h_min"),
				Number("volume_24h_max"),
				Number("circulating_supply_min"),
				Number("circulating_supply_max"),
				Number("percent_change_24h_min"),
				Number("percent_change_24h_max"),
				String("convert"),
				String("convert_id"),
				String("sort", Enum("market_cap", "name", "symbol", "date_added", "price",
					"circulating_supply", "total_supply", "max_supply", "num_market_pairs",
					"volume_24h", "percent_change_1h", "percent_change_24h", "percent_change_7d")),
				String("sort_dir", Enum(sortDirections...)),
				String("cryptocurrency_type"),
				String("tag"),
				String("aux"),
			},
		},
		{
			Name:        "cryptoQuotesLatest",
			Description: "Returns the latest market quote for one or more cryptocurrencies.",
			Path:        "/v2/cryptocurrency/quotes/latest",
			Tier:        Basic,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				String("convert"),
				String("convert_id"),
				String("aux"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "dexInfo",
			Description: "Returns all static metadata for one or more decentralised exchanges.",
			Path:        "/v4/dex/listings/info",
			Tier:        Basic,
			Params: []Param{
				String("id"),
				String("aux"),
			},
		},
		{
			Name:        "dexListingsLatest",
			Description: "Returns a paginated list of all decentralised cryptocurrency exchanges including the latest aggregate market data.",
			Path:        "/v4/dex/listings/quotes",
			Tier:        Basic,
			Params: []Param{
				String("start"),
				String("limit"),
				String("sort", Enum("name", "volume_24h", "market_share", "num_markets")),
				String("sort_dir", Enum("desc", "asc")),
				String("type", Enum("all", "orderbook", "swap", "aggregator")),
				String("aux"),
				String("convert_id"),
			},
		},
		{
			Name:        "dexNetworksList",
			Description: "Returns a list of all networks to unique CoinMarketCap ids.",
			Path:        "/v4/dex/networks/list",
			Tier:        Basic,
			Params: []Param{
				String("start"),
				String("limit"),
				String("sort", Enum("id", "name")),
				String("sort_dir", Enum("desc", "asc")),
				String("aux"),
			},
		},
		{
			Name:        "dexSpotPairsLatest",
			Description: "Returns a paginated list of all active dex spot pairs with latest market data.",
			Path:        "/v4/dex/spot-pairs/latest",
			Tier:        Basic,
			Params: []Param{
				String("network_id"),
				String("network_slug"),
				String("dex_id"),
				String("dex_slug"),
				String("base_asset_id"),
				String("base_asset_symbol"),
				String("base_asset_contract_address"),
				String("base_asset_ucid"),
				String("quote_asset_id"),
				String("quote_asset_symbol"),
				String("quote_asset_contract_address"),
				String("quote_asset_ucid"),
				String("scroll_id"),
				String("limit"),
				String("liquidity_min"),
				String("liquidity_max"),
				String("volume_24h_min"),
				String("volume_24h_max"),
				String("no_of_transactions_24h_min"),
				String("no_of_transactions_24h_max"),
				String("percent_change_24h_min"),
				String("percent_change_24h_max"),
				String("sort", Enum("name", "date_added", "price", "volume_24h", "percent_change_1h",
					"percent_change_24h", "liquidity", "fully_diluted_value", "no_of_transactions_24h")),
				String("sort_dir", Enum("desc", "asc")),
				String("aux"),
				String("reverse_order"),
				String("convert_id"),
			},
		},
		{
			Name:        "dexPairsQuotesLatest",
			Description: "Returns the latest market quote for 1 or more spot pairs.",
			Path:        "/v4/dex/pairs/quotes/latest",
			Tier:        Basic,
			Params:      dexPairParams(),
		},
		{
			Name:        "dexPairsOhlcvLatest",
			Description: "Returns the latest OHLCV market values for one or more spot pairs for the current UTC day.",
			Path:        "/v4/dex/pairs/ohlcv/latest",
			Tier:        Basic,
			Params:      dexPairParams(),
		},
		{
			Name:        "dexPairsOhlcvHistorical",
			Description: "Returns historical OHLCV data along with market cap for any spot pairs using time interval parameters.",
			Path:        "/v4/dex/pairs/ohlcv/historical",
			Tier:        Basic,
			Params: []Param{
				String("contract_address"),
				String("network_id"),
				String("network_slug"),
				String("time_period", Enum("daily", "hourly", "1m", "5m", "15m", "30m", "4h", "8h", "12h", "weekly", "monthly")),
				String("time_start"),
				String("time_end"),
				String("count"),
				String("interval", Enum("1m", "5m", "15m", "30m", "1h", "4h", "8h", "12h", "daily", "weekly", "monthly")),
				String("aux"),
				String("convert_id"),
				String("skip_invalid"),
				String("reverse_order"),
			},
		},
		{
			Name:        "dexPairsTradeLatest",
			Description: "Returns up to the latest 100 trades for 1 spot pair.",
			Path:        "/v4/dex/pairs/trade/latest",
			Tier:        Basic,
			Params:      dexPairParams(),
		},
		{
			Name:        "exchangeAssets",
			Description: "Returns the assets/token holdings of an exchange.",
			Path:        "/v1/exchange/assets",
			Tier:        Basic,
			Params: []Param{
				String("id"),
				String("slug"),
			},
		},
		{
			Name:        "exchangeInfo",
			Description: "Returns metadata for one or more exchanges.",
			Path:        "/v1/exchange/info",
			Tier:        Basic,
			Params: []Param{
				String("id"),
				String("slug"),
				String("aux"),
			},
		},
		{
			Name:        "exchangeMap",
			Description: "Returns a mapping of all exchanges to unique CoinMarketCap IDs.",
			Path:        "/v1/exchange/map",
			Tier:        Basic,
			Params: []Param{
				String("listing_status"),
				String("slug"),
				Number("start"),
				Number("limit"),
				String("sort"),
			},
		},
		{
			Name:        "globalMetricsLatest",
			Description: "Returns the latest global cryptocurrency market metrics.",
			Path:        "/v1/global-metrics/quotes/latest",
			Tier:        Basic,
			Params: []Param{
				String("convert"),
				String("convert_id"),
			},
		},
		{
			Name:        "cmc100IndexHistorical",
			Description: "Returns an interval of historic CoinMarketCap 100 Index values based on the interval parameter.",
			Path:        "/v3/index/cmc100-historical",
			Tier:        Basic,
			Params: []Param{
				String("time_start"),
				String("time_end"),
				String("count"),
				String("interval", Enum("5m", "15m", "daily")),
			},
		},
		{
			Name:        "cmc100IndexLatest",
			Description: "Returns the lastest CoinMarketCap 100 Index value, constituents, and constituent weights.",
			Path:        "/v3/index/cmc100-latest",
			Tier:        Basic,
		},
		{
			Name:        "fearAndGreedLatest",
			Description: "Returns the latest CMC Crypto Fear and Greed Index value.",
			Path:        "/v3/fear-and-greed/latest",
			Tier:        Basic,
		},
		{
			Name:        "fearAndGreedHistorical",
			Description: "Returns historical CMC Crypto Fear and Greed Index values.",
			Path:        "/v3/fear-and-greed/historical",
			Tier:        Basic,
			Params: []Param{
				Number("start", Min(1)),
				Number("limit", Min(1), Max(500)),
			},
		},
		{
			Name:        "fiatMap",
			Description: "Returns a mapping of all supported fiat currencies to unique CoinMarketCap IDs.",
			Path:        "/v1/fiat/map",
			Tier:        Basic,
			Params: []Param{
				Number("start"),
				Number("limit"),
				String("sort"),
				Boolean("include_metals"),
			},
		},
		{
			Name:        "getPostmanCollection",
			Description: "Returns a Postman collection for the CoinMarketCap API.",
			Path:        "/v1/tools/postman",
			Tier:        Basic,
		},
		{
			Name:        "priceConversion",
			Description: "Convert an amount of one cryptocurrency or fiat currency into one or more different currencies.",
			Path:        "/v2/tools/price-conversion",
			Tier:        Basic,
			Params: []Param{
				Number("amount", Required()),
				String("id"),
				String("symbol"),
				String("time"),
				String("convert"),
				String("convert_id"),
			},
		},
		{
			Name:        "keyInfo",
			Description: "Returns API key details and usage stats.",
			Path:        "/v1/key/info",
			Tier:        Basic,
		},
	}
}

func hobbyistTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "cryptoAirdrop",
			Description: "Returns information about a single airdrop on CoinMarketCap.",
			Path:        "/v1/cryptocurrency/airdrop",
			Tier:        Hobbyist,
			Params: []Param{
				String("id", Required()),
			},
		},
		{
			Name:        "cryptoAirdrops",
			Description: "Returns a list of past, present, or future airdrops on CoinMarketCap.",
			Path:        "/v1/cryptocurrency/airdrops",
			Tier:        Hobbyist,
			Params: []Param{
				Number("start"),
				Number("limit"),
				String("status"),
				String("id"),
				String("slug"),
				String("symbol"),
			},
		},
		{
			Name:        "historicalCryptocurrencyListings",
			Description: "Returns a ranked and sorted list of all cryptocurrencies for a historical point in time.",
			Path:        "/v1/cryptocurrency/listings/historical",
			Tier:        Hobbyist,
			Params: []Param{
				StringOrNumber("timestamp", Describe("ISO 8601 date or Unix time in seconds")),
				Number("start"),
				Number("limit"),
				String("convert"),
				String("convert_id"),
				String("sort"),
				String("sort_dir"),
				String("cryptocurrency_type"),
				String("aux"),
			},
		},
		{
			Name:        "cryptoQuotesHistorical",
			Description: "Returns an interval of historical market quotes for any cryptocurrency.",
			Path:        "/v2/cryptocurrency/quotes/historical",
			Tier:        Hobbyist,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				String("time_start"),
				String("time_end"),
				Number("count"),
				String("interval"),
				String("convert"),
				String("convert_id"),
				String("aux"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "cryptoQuotesHistoricalV3",
			Description: "Returns an interval of historic market quotes for any cryptocurrency based on time and interval parameters.",
			Path:        "/v3/cryptocurrency/quotes/historical",
			Tier:        Hobbyist,
			Params: []Param{
				String("id"),
				String("symbol"),
				String("time_start"),
				String("time_end"),
				Number("count", Min(1), Max(10000)),
				String("interval", Enum(quoteIntervals...)),
				String("convert"),
				String("convert_id"),
				String("aux"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "exchangeQuotesHistorical",
			Description: "Returns an interval of historic quotes for any exchange based on time and interval parameters.",
			Path:        "/v1/exchange/quotes/historical",
			Tier:        Hobbyist,
			Params: []Param{
				String("id"),
				String("slug"),
				String("time_start"),
				String("time_end"),
				Number("count", Min(1), Max(10000)),
				String("interval", Enum(quoteIntervals...)),
				String("convert"),
				String("convert_id"),
			},
		},
		{
			Name:        "globalMetricsHistorical",
			Description: "Returns historical global cryptocurrency market metrics.",
			Path:        "/v1/global-metrics/quotes/historical",
			Tier:        Hobbyist,
			Params: []Param{
				String("time_start"),
				String("time_end"),
				Number("count"),
				String("interval"),
				String("convert"),
				String("convert_id"),
				String("aux"),
			},
		},
	}
}

func startupTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "newCryptocurrencyListings",
			Description: "Returns a paginated list of most recently added cryptocurrencies.",
			Path:        "/v1/cryptocurrency/listings/new",
			Tier:        Startup,
			Params: []Param{
				Number("start", Min(1)),
				Number("limit", Min(1), Max(5000)),
				String("convert"),
				String("convert_id"),
				String("sort_dir", Enum(sortDirections...)),
			},
		},
		{
			Name:        "cryptoTrendingGainersLosers",
			Description: "Returns the biggest gainers and losers in a given time period.",
			Path:        "/v1/cryptocurrency/trending/gainers-losers",
			Tier:        Startup,
			Params:      []Param{String("time_period")},
		},
		{
			Name:        "cryptoTrendingLatest",
			Description: "Returns the top cryptocurrencies by search volume in a given time period.",
			Path:        "/v1/cryptocurrency/trending/latest",
			Tier:        Startup,
			Params:      []Param{String("time_period")},
		},
		{
			Name:        "cryptoTrendingMostVisited",
			Description: "Returns the most visited cryptocurrencies on CoinMarketCap in a given time period.",
			Path:        "/v1/cryptocurrency/trending/most-visited",
			Tier:        Startup,
			Params:      []Param{String("time_period")},
		},
		{
			Name:        "cryptoOhlcvHistorical",
			Description: "Returns historical OHLCV market values for one or more cryptocurrencies.",
			Path:        "/v2/cryptocurrency/ohlcv/historical",
			Tier:        Startup,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				String("time_period"),
				String("time_start"),
				String("time_end"),
				Number("count"),
				String("interval"),
				String("convert"),
				String("convert_id"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "cryptoOhlcvLatest",
			Description: "Returns the latest OHLCV (Open, High, Low, Close, Volume) market values for one or more cryptocurrencies.",
			Path:        "/v2/cryptocurrency/ohlcv/latest",
			Tier:        Startup,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				String("convert"),
				String("convert_id"),
				Boolean("skip_invalid"),
			},
		},
		{
			Name:        "cryptoPricePerformanceStatsLatest",
			Description: "Returns price performance statistics for one or more cryptocurrencies including ROI and ATH stats.",
			Path:        "/v2/cryptocurrency/price-performance-stats/latest",
			Tier:        Startup,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				String("time_period"),
				String("convert"),
				String("convert_id"),
			},
		},
	}
}

func standardTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "cryptoMarketPairsLatest",
			Description: "Returns all market pairs for the specified cryptocurrency with associated stats.",
			Path:        "/v2/cryptocurrency/market-pairs/latest",
			Tier:        Standard,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
				Number("start"),
				Number("limit"),
				String("convert"),
				String("convert_id"),
				String("matched_id"),
				String("matched_symbol"),
				String("category"),
				String("fee_type"),
				String("aux"),
			},
		},
		{
			Name:        "exchangeListingsLatest",
			Description: "Returns a paginated list of all exchanges with latest market data.",
			Path:        "/v1/exchange/listings/latest",
			Tier:        Standard,
			Params: []Param{
				Number("start"),
				Number("limit"),
				String("sort"),
				String("sort_dir"),
				String("convert"),
				String("convert_id"),
				String("aux"),
			},
		},
		{
			Name:        "exchangeMarketPairsLatest",
			Description: "Returns all market pairs for the specified exchange with associated stats.",
			Path:        "/v1/exchange/market-pairs/latest",
			Tier:        Standard,
			Params: []Param{
				String("id"),
				String("slug"),
				Number("start"),
				Number("limit"),
				String("convert"),
				String("convert_id"),
				String("aux"),
			},
		},
		{
			Name:        "exchangeQuotesLatest",
			Description: "Returns the latest market quotes for one or more exchanges.",
			Path:        "/v1/exchange/quotes/latest",
			Tier:        Standard,
			Params: []Param{
				String("id"),
				String("slug"),
				String("convert"),
				String("convert_id"),
				String("aux"),
			},
		},
		{
			Name:        "contentLatest",
			Description: "Returns latest cryptocurrency news and Alexandria articles.",
			Path:        "/v1/content/latest",
			Tier:        Standard,
			Params: []Param{
				Number("start"),
				Number("limit"),
				String("id"),
				String("slug"),
				String("symbol"),
				String("news_type"),
			},
		},
		{
			Name:        "contentPostsTop",
			Description: "Returns top cryptocurrency posts.",
			Path:        "/v1/content/posts/top",
			Tier:        Standard,
			Params:      pageParams(),
		},
		{
			Name:        "contentPostsLatest",
			Description: "Returns latest cryptocurrency posts.",
			Path:        "/v1/content/posts/latest",
			Tier:        Standard,
			Params:      pageParams(),
		},
		{
			Name:        "contentPostsComments",
			Description: "Returns comments for a specific post.",
			Path:        "/v1/content/posts/comments",
			Tier:        Standard,
			Params: []Param{
				String("id", Required()),
				Number("start"),
				Number("limit"),
			},
		},
		{
			Name:        "communityTrendingTopic",
			Description: "Returns community trending topics.",
			Path:        "/v1/community/trending/topic",
			Tier:        Standard,
			Params:      pageParams(),
		},
		{
			Name:        "communityTrendingToken",
			Description: "Returns community trending tokens.",
			Path:        "/v1/community/trending/token",
			Tier:        Standard,
			Params:      pageParams(),
		},
	}
}

func enterpriseTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "blockchainStatisticsLatest",
			Description: "Returns the latest statistics for one or more blockchains.",
			Path:        "/v1/blockchain/statistics/latest",
			Tier:        Enterprise,
			Params: []Param{
				String("id"),
				String("slug"),
				String("symbol"),
			},
		},
	}
}

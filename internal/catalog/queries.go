package catalog

// Category names in presentation order.
const (
	CategoryCryptoMeta   = "Cryptocurrencies (Metadata)"
	CategoryCryptoPrices = "Crypto Prices (Daily)"
	CategoryOilPrices    = "Oil Prices"
	CategoryStockPrices  = "Stock Prices"
	CategoryCrossMarket  = "Cross-Market Joins"
)

// builtin returns the full query set. Cross-market comparisons use LEFT
// JOIN with the non-anchor filters inside the ON clause, so a date missing
// on one side keeps the anchor row with a NULL instead of dropping it.
func builtin() []Query {
	return []Query{
		// -------------------------------------------------------------------
		// Cryptocurrencies (Metadata)
		// -------------------------------------------------------------------
		{
			Category: CategoryCryptoMeta,
			Label:    "Top 3 Cryptocurrencies by Market Cap",
			Chart:    ChartBar,
			SQL: `SELECT name, market_cap
FROM cryptocurrencies
ORDER BY market_cap DESC
LIMIT 3`,
		},
		{
			Category: CategoryCryptoMeta,
			Label:    "Coins Where Circulating Supply > 90% of Total",
			Chart:    ChartBar,
			SQL: `SELECT name, circulating_supply, total_supply
FROM cryptocurrencies
WHERE circulating_supply >= 0.9 * total_supply`,
		},
		{
			Category: CategoryCryptoMeta,
			Label:    "Coins Within 10% of All-Time High",
			Chart:    ChartBar,
			SQL: `SELECT name, current_price, ath
FROM cryptocurrencies
WHERE current_price >= 0.9 * ath`,
		},
		{
			Category: CategoryCryptoMeta,
			Label:    "Avg Market Cap Rank of Coins With Volume > $1B",
			Chart:    ChartBar,
			SQL: `SELECT AVG(market_cap_rank) AS avg_rank
FROM cryptocurrencies
WHERE total_volume > 1000000000`,
		},
		{
			Category: CategoryCryptoMeta,
			Label:    "Most Recently Updated Coin",
			Chart:    ChartBar,
			SQL: `SELECT name, last_updated
FROM cryptocurrencies
ORDER BY last_updated DESC
LIMIT 1`,
		},

		// -------------------------------------------------------------------
		// Crypto Prices (Daily)
		// -------------------------------------------------------------------
		{
			Category: CategoryCryptoPrices,
			Label:    "Highest Bitcoin Price (Last 365 Days)",
			Chart:    ChartBar,
			SQL: `SELECT MAX(price_usd) AS max_price
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) >= DATE('now', '-365 day')`,
		},
		{
			Category: CategoryCryptoPrices,
			Label:    "Average Ethereum Price (Past 1 Year)",
			Chart:    ChartBar,
			SQL: `SELECT ROUND(AVG(price_usd), 2) AS avg_price
FROM crypto_prices
WHERE coin_id = 'ethereum'
AND date(date) >= DATE('now', '-365 day')`,
		},
		{
			Category: CategoryCryptoPrices,
			Label:    "Bitcoin Daily Price Trend in 2025",
			Chart:    ChartLine,
			SQL: `SELECT date(date) AS date, price_usd
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) BETWEEN '2025-01-01' AND '2025-12-31'
ORDER BY date`,
		},
		{
			Category: CategoryCryptoPrices,
			Label:    "Coin With Highest Average Price (All Time)",
			Chart:    ChartBar,
			SQL: `SELECT coin_id, ROUND(AVG(price_usd), 2) AS avg_price
FROM crypto_prices
GROUP BY coin_id
ORDER BY avg_price DESC
LIMIT 1`,
		},
		{
			Category: CategoryCryptoPrices,
			Label:    "Bitcoin % Price Change (Sep 2024 to Sep 2025)",
			Chart:    ChartBar,
			SQL: `SELECT
  ROUND((MAX(price_usd) - MIN(price_usd)) * 100.0 / MIN(price_usd), 2) AS pct_change
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) BETWEEN '2024-09-01' AND '2025-09-30'`,
		},

		// -------------------------------------------------------------------
		// Oil Prices
		// -------------------------------------------------------------------
		{
			Category: CategoryOilPrices,
			Label:    "Highest Oil Price (Last 5 Years)",
			Chart:    ChartBar,
			SQL: `SELECT ROUND(MAX(price), 2) AS max_oil_price
FROM oil_prices
WHERE date(date) >= DATE('now', '-5 years')`,
		},
		{
			Category: CategoryOilPrices,
			Label:    "Average Oil Price Per Year",
			Chart:    ChartLine,
			SQL: `SELECT strftime('%Y', date) AS year,
       ROUND(AVG(price), 2) AS avg_price
FROM oil_prices
GROUP BY year
ORDER BY year`,
		},
		{
			Category: CategoryOilPrices,
			Label:    "Oil Prices During COVID Crash (Mar-Apr 2020)",
			Chart:    ChartLine,
			SQL: `SELECT date(date) AS date, price
FROM oil_prices
WHERE date(date) BETWEEN '2020-03-01' AND '2020-04-30'
ORDER BY date`,
		},
		{
			Category: CategoryOilPrices,
			Label:    "Lowest Oil Price (All Time)",
			Chart:    ChartBar,
			SQL: `SELECT ROUND(MIN(price), 2) AS min_oil_price
FROM oil_prices`,
		},
		{
			Category: CategoryOilPrices,
			Label:    "Oil Price Volatility Per Year (Max - Min)",
			Chart:    ChartLine,
			SQL: `SELECT strftime('%Y', date) AS year,
       ROUND(MAX(price) - MIN(price), 2) AS volatility
FROM oil_prices
GROUP BY year
ORDER BY year`,
		},

		// -------------------------------------------------------------------
		// Stock Prices
		// -------------------------------------------------------------------
		{
			Category: CategoryStockPrices,
			Label:    "All Stock Prices for S&P 500 (^GSPC)",
			Chart:    ChartLine,
			SQL: `SELECT date(date) AS date, open, high, low, close, volume
FROM stock_prices
WHERE ticker = '^GSPC'
ORDER BY date DESC
LIMIT 100`,
		},
		{
			Category: CategoryStockPrices,
			Label:    "Highest Closing Price for NASDAQ (^IXIC)",
			Chart:    ChartBar,
			SQL: `SELECT ROUND(MAX(close), 2) AS max_close
FROM stock_prices
WHERE ticker = '^IXIC'`,
		},
		{
			Category: CategoryStockPrices,
			Label:    "Top 5 Days With Highest Price Spread for S&P 500",
			Chart:    ChartBar,
			SQL: `SELECT date(date) AS date,
       ROUND(high - low, 2) AS spread
FROM stock_prices
WHERE ticker = '^GSPC'
ORDER BY spread DESC
LIMIT 5`,
		},
		{
			Category: CategoryStockPrices,
			Label:    "Monthly Average Closing Price Per Ticker",
			Chart:    ChartBar,
			SQL: `SELECT ticker,
       strftime('%Y-%m', date) AS month,
       ROUND(AVG(close), 2) AS avg_close
FROM stock_prices
GROUP BY ticker, month
ORDER BY ticker, month`,
		},
		{
			Category: CategoryStockPrices,
			Label:    "Average Trading Volume of NSEI in 2024",
			Chart:    ChartBar,
			SQL: `SELECT ROUND(AVG(volume), 0) AS avg_volume
FROM stock_prices
WHERE ticker = '^NSEI'
AND strftime('%Y', date) = '2024'`,
		},

		// -------------------------------------------------------------------
		// Cross-Market Joins
		// -------------------------------------------------------------------
		{
			Category: CategoryCrossMarket,
			Label:    "Bitcoin vs Oil Average Price in 2025",
			Chart:    ChartBar,
			SQL: `SELECT
  ROUND(AVG(cp.price_usd), 2) AS avg_bitcoin,
  ROUND(AVG(op.price), 2)     AS avg_oil
FROM crypto_prices cp
LEFT JOIN oil_prices op ON date(cp.date) = date(op.date)
WHERE cp.coin_id = 'bitcoin'
AND date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Bitcoin vs S&P 500 (Correlation Check)",
			Chart:    ChartScatter,
			SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       sp.close     AS sp500_close
FROM crypto_prices cp
LEFT JOIN stock_prices sp ON date(cp.date) = date(sp.date) AND sp.ticker = '^GSPC'
WHERE cp.coin_id = 'bitcoin'
ORDER BY date DESC
LIMIT 60`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Ethereum vs NASDAQ Daily Prices in 2025",
			Chart:    ChartLine,
			SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS ethereum_price,
       sp.close     AS nasdaq_close
FROM crypto_prices cp
LEFT JOIN stock_prices sp ON date(cp.date) = date(sp.date) AND sp.ticker = '^IXIC'
WHERE cp.coin_id = 'ethereum'
AND date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
ORDER BY date`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Oil Price Spikes vs Bitcoin Price Change",
			Chart:    ChartBar,
			SQL: `SELECT date(op.date) AS date,
       op.price          AS oil_price,
       cp.price_usd      AS bitcoin_price
FROM oil_prices op
LEFT JOIN crypto_prices cp ON date(op.date) = date(cp.date) AND cp.coin_id = 'bitcoin'
ORDER BY op.price DESC
LIMIT 20`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Top 3 Crypto Coins vs NIFTY (^NSEI) 2025",
			Chart:    ChartLine,
			SQL: `SELECT date(cp.date) AS date,
       cp.coin_id,
       cp.price_usd AS crypto_price,
       sp.close     AS nifty_close
FROM crypto_prices cp
LEFT JOIN stock_prices sp ON date(cp.date) = date(sp.date) AND sp.ticker = '^NSEI'
WHERE date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
AND cp.coin_id IN (
    SELECT coin_id FROM crypto_prices
    GROUP BY coin_id ORDER BY AVG(price_usd) DESC LIMIT 3
)
ORDER BY date, cp.coin_id`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "S&P 500 vs Crude Oil on Same Dates",
			Chart:    ChartLine,
			SQL: `SELECT date(sp.date) AS date,
       sp.close  AS sp500_close,
       op.price  AS oil_price
FROM stock_prices sp
LEFT JOIN oil_prices op ON date(sp.date) = date(op.date)
WHERE sp.ticker = '^GSPC'
ORDER BY date DESC
LIMIT 60`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Bitcoin vs Crude Oil (Same Date Correlation)",
			Chart:    ChartScatter,
			SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       op.price     AS oil_price
FROM crypto_prices cp
LEFT JOIN oil_prices op ON date(cp.date) = date(op.date)
WHERE cp.coin_id = 'bitcoin'
ORDER BY date DESC
LIMIT 60`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "NASDAQ vs Ethereum Price Trends",
			Chart:    ChartLine,
			SQL: `SELECT date(sp.date) AS date,
       sp.close     AS nasdaq_close,
       cp.price_usd AS ethereum_price
FROM stock_prices sp
LEFT JOIN crypto_prices cp ON date(sp.date) = date(cp.date) AND cp.coin_id = 'ethereum'
WHERE sp.ticker = '^IXIC'
ORDER BY date DESC
LIMIT 60`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Top 3 Crypto Coins Joined with Stock Indices (2025)",
			Chart:    ChartLine,
			SQL: `SELECT date(cp.date) AS date,
       cp.coin_id,
       cp.price_usd AS crypto_price,
       sp.ticker,
       sp.close     AS stock_close
FROM crypto_prices cp
LEFT JOIN stock_prices sp ON date(cp.date) = date(sp.date)
    AND sp.ticker IN ('^GSPC', '^NSEI', '^IXIC')
WHERE date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
AND cp.coin_id IN (
    SELECT coin_id FROM crypto_prices
    GROUP BY coin_id ORDER BY AVG(price_usd) DESC LIMIT 3
)
ORDER BY date, cp.coin_id, sp.ticker`,
		},
		{
			Category: CategoryCrossMarket,
			Label:    "Multi-Join: Stocks + Oil + Bitcoin (Daily)",
			Chart:    ChartLine,
			SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       op.price     AS oil_price,
       sp.close     AS sp500_close
FROM crypto_prices cp
LEFT JOIN oil_prices op   ON date(cp.date) = date(op.date)
LEFT JOIN stock_prices sp ON date(cp.date) = date(sp.date) AND sp.ticker = '^GSPC'
WHERE cp.coin_id = 'bitcoin'
ORDER BY date DESC
LIMIT 60`,
		},
	}
}

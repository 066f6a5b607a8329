// Package constants provides shared constants for the calc-widgets application.
package constants

// DateLayout is the format expected from HTML date inputs and is also the
// output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weeks used for salary conversions
	WeeksPerYear = 52

	// DaysPerYear is the number of days used for daily compounding
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MaxSimulationMonths caps month-by-month payoff simulations (50 years)
	MaxSimulationMonths = 600

	// DefaultVATRate is the South African standard VAT rate
	DefaultVATRate = 15.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Locale defaults
const (
	// DefaultLocale is the BCP 47 tag used for number grouping
	DefaultLocale = "en-ZA"

	// DefaultCurrencySymbol prefixes formatted currency amounts
	DefaultCurrencySymbol = "R"

	// DefaultSiteName heads every page
	DefaultSiteName = "Calculators"

	// DefaultShareMessage is used when a result has no summary of its own
	DefaultShareMessage = "Check out this calculator"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxFormSizeBytes is the default maximum size of a submitted form (64 KB)
	DefaultMaxFormSizeBytes int64 = 64 * 1024

	// DefaultRateLimitCapacity is the number of evaluations a client may burst
	DefaultRateLimitCapacity = 60

	// DefaultCacheTTLSeconds is how long rendered results stay cached
	DefaultCacheTTLSeconds = 600

	// DefaultCacheEntries bounds the in-memory result cache
	DefaultCacheEntries = 1024
)

// Cache backends
const (
	// CacheBackendNone disables result caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in process
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps results in Redis
	CacheBackendRedis = "redis"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

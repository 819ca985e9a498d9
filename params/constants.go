package params

// Network wide protocol constants.
const (
	// SunPerTRX is the number of minor units (sun) per TRX.
	SunPerTRX int64 = 1_000_000

	// MaxFeeLimit is the network ceiling for the fee limit of a contract
	// trigger transaction, in sun.
	MaxFeeLimit int64 = 1_000 * SunPerTRX

	// MinFreezeDuration is the minimum duration of a resource freeze,
	// in days.
	MinFreezeDuration int64 = 3

	// DefaultTxLifetime is the default span between a transaction's
	// timestamp and its expiration, in milliseconds.
	DefaultTxLifetime int64 = 60_000

	// MaxTokenNameLength bounds the name and abbreviation of an issued
	// token, in bytes.
	MaxTokenNameLength = 32

	// MaxTokenURLLength bounds the URL of an issued token, in bytes.
	MaxTokenURLLength = 256
)

package config

// Stress run defaults.
const (
	DefaultStressCount      = 10000
	DefaultStressSeed       = 1
	DefaultStressCheckEvery = 1000
	DefaultStressDuplicates = false
)

// Arena defaults.
const (
	DefaultHibernationThreshold = 1024
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Telemetry defaults.
const (
	DefaultServiceName  = "rbt"
	DefaultOTLPInsecure = false
)

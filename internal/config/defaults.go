// Package config provides configuration loading and defaults for chargewatch.
package config

// DefaultHelperCommand is the authenticated curl wrapper used to reach the
// sessions API.
const DefaultHelperCommand = "curl_device_manager.sh"

// DefaultAPIBaseURL is the sessions API root.
const DefaultAPIBaseURL = "https://api.powerflex.io"

// DefaultFetchTimeoutSeconds bounds one helper invocation.
const DefaultFetchTimeoutSeconds = 30

// DefaultACN and DefaultAccount scope the session query when the user
// accepts the prompt defaults.
const (
	DefaultACN     = "0021"
	DefaultAccount = "16"
)

// DefaultVoltageBasis is the single-phase voltage assumed when deriving
// amperage. Sites on other service voltages should override it.
const DefaultVoltageBasis = 208.0

// Default amperage cutoffs for the HIGH and MED performance tiers.
const (
	DefaultTierHighAmps = 16.0
	DefaultTierMedAmps  = 8.0
)

// DefaultConfigDir is the default location for chargewatch configuration.
const DefaultConfigDir = "~/.config/chargewatch"

// DefaultExportDir is where CSV/PDF exports land.
const DefaultExportDir = "."

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color:       true,
	Width:       80,
	ChartHeight: 10,
}

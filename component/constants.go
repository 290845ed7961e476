package component

// Well-known component names.
const (
	ComponentConfig = "config"
	ComponentLogger = "logger"
	ComponentEvent  = "event"
	ComponentCache  = "cache"
)

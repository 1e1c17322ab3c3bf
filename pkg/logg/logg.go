package logg

const (
	Layer     = "layer"
	Operation = "operation"
	SessionID = "session_id"
	RunID     = "run_id"
	Scenario  = "scenario"
	Step      = "step"
	Hook      = "hook"
	Driver    = "driver"
	Browser   = "browser"
	Host      = "host"
	Port      = "port"
	URL       = "url"
	Locator   = "locator"
	Command   = "command"
)

package static

import "time"

// Directory Constants
const (
	ROOTDIR    = "sapha"
	CONFIGDIR  = "config"
	LOGDIR     = "logs"
	REPORTDIR  = "reports"
	SSHDIR     = ".ssh"
	SAPHA_HOME = "/root"
)

var STRUCTURE = []string{
	CONFIGDIR,
	LOGDIR,
	REPORTDIR,
}

// Default Log Level
const DEFAULT_LOG_LEVEL = "info"

// RPC Constants
const (
	RPC_PORT            = 8080
	RPC_PATH            = "/RPC2"
	RPC_MAX_CONNECTIONS = 3
	RPC_PREFIX          = "sapha"
)

const (
	METHOD_PING          = RPC_PREFIX + ".ping"
	METHOD_BUSY          = RPC_PREFIX + ".busy"
	METHOD_IMPORT_CONFIG = RPC_PREFIX + ".import_config"
	METHOD_APPLY         = RPC_PREFIX + ".apply"
	METHOD_LAST_RESULT   = RPC_PREFIX + ".last_result"
	METHOD_SHUTDOWN      = RPC_PREFIX + ".shutdown"
)

// Legacy in-progress sentinel still accepted on the wire
const WAIT_SENTINEL = "wait"

// Retry and polling budget, expressed in time units
const (
	DEFAULT_TIME_UNIT       = time.Second
	DEFAULT_CALL_RETRIES    = 5
	DEFAULT_POLL_CEILING    = 3600
	DEFAULT_CALL_TIMEOUT    = 15 * time.Minute
	DEFAULT_COMMAND_TIMEOUT = 10 * time.Minute
	RPC_DIAL_TIMEOUT        = 10 * time.Second
)

// Roles
const (
	ROLE_MASTER = "master"
	ROLE_SLAVE  = "slave"
)

// Component Constants
const (
	COMPONENT_NTP      = "ntp"
	COMPONENT_WATCHDOG = "watchdog"
	COMPONENT_FENCING  = "fencing"
	COMPONENT_CLUSTER  = "cluster"
	COMPONENT_HANA     = "hana"
)

// Apply order shared by master and every slave
var COMPONENT_ORDER = []string{
	COMPONENT_NTP,
	COMPONENT_WATCHDOG,
	COMPONENT_FENCING,
	COMPONENT_CLUSTER,
	COMPONENT_HANA,
}

const SNAPSHOT_VERSION = 1

// Product and scenario identifiers
const (
	PRODUCT_HANA          = "HANA"
	SCENARIO_PERF_OPT     = "performance-optimized"
	SCENARIO_COST_OPT     = "cost-optimized"
	SCENARIO_CHAINED      = "chained"
	DEFAULT_AGENT_BINARY  = "/usr/sbin/sapha"
	DEFAULT_SSH_USER      = "root"
	DEFAULT_SSH_PORT      = 22
	DEFAULT_SSH_TIMEOUT   = 15 * time.Second
	DEFAULT_AGENT_STARTUP = 10 * time.Second
)

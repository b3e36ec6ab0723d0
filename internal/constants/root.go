package constants

import "time"

const (
	AppName            = "mixcheck"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/mixcheck/mixcheck.db"
	Version            = "v0.3.0"

	// Storage keys. The suffix versions the stored format so an incompatible
	// layout can live under a new key without rewriting old data.
	HistoryKey  = "history:v1"
	SettingsKey = "settings:v1"

	// DateFormat is the date-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LegacyDateFormat is the dd/mm/yy form written by early history records and tank labels
	LegacyDateFormat = "02/01/06"

	// LabelDateFormat is the human readable form used for section titles and filter labels
	LabelDateFormat = "Jan 2, 2006"

	// TimeFormat is the 24h clock used in history listings
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mixcheck-"
	BackupFileSuffix = ".zst"

	// Lock constants
	LockfileName    = "mixcheck.lock"
	LockStaleAfter  = 10 * time.Minute
	EnvDBConnection = "MIXCHECK_DB_CONNECTION"
)

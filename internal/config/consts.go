package config

const (
	// EnvConfigFile is the path to the YAML configuration file
	EnvConfigFile = "BACKUP_PIPELINE_CONFIG_FILE"

	// Pipeline configuration
	EnvInterpreter    = "PYTHON"
	EnvBackuperScript = "BACKUPER_SCRIPT"
	EnvReporterScript = "REPORTER_SCRIPT"
	EnvCronSchedule   = "BACKUP_CRON_SCHEDULE"

	// Credentials handed to the pipeline programs
	EnvMandrillAPIKey = "MANDRILL_APIKEY"
	EnvPyraxUsername  = "PYRAX_USERNAME"
	EnvPyraxAPIKey    = "PYRAX_APIKEY"

	// DefaultBackuperScript is the backup program run as the first pipeline stage.
	DefaultBackuperScript = "backuper.py"
	// DefaultReporterScript is the report program run as the second pipeline stage.
	DefaultReporterScript = "reporter.py"
)

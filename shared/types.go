package shared

type ServerConfig struct {
	Agenda   AgendaConfig   `mapstructure:"agenda" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Media    MediaConfig    `mapstructure:"media"`
	Google   GoogleConfig   `mapstructure:"google"`
}

type AgendaConfig struct {
	Listener ListenerConfig `mapstructure:"listener" validate:"required"`
	LogLevel string         `mapstructure:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	Cron     CronConfig     `mapstructure:"cron"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver" validate:"omitempty,oneof=sqlite postgres"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SqliteConfig struct {
	Dir        string `mapstructure:"dir"`
	PassPhrase string `mapstructure:"passPhrase"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type MediaConfig struct {
	Dir string `mapstructure:"dir"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket               string `mapstructure:"bucket" validate:"required_with=Receipts EnableSqliteBackup"`
	Prefix               string `mapstructure:"prefix"`
	Receipts             bool   `mapstructure:"receipts"`
	SqliteBackupSchedule string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackup"`
	EnableSqliteBackup   bool   `mapstructure:"enableSqliteBackup"`
}

package config

// SERVER_YML is the configuration used by `agenda server --dev`.
const SERVER_YML = `
agenda:
  listener:
    port: 3000
  logLevel: debug
  cron:
    timeZone: "America/Sao_Paulo"

database:
  driver: sqlite
  sqlite:
    dir: ./dev
    passPhrase:
  postgres:
    dsn: "host=localhost user=agenda password=agenda dbname=agenda port=5432 sslmode=disable"

media:
  dir: ./dev

google:
  applicationCredentials:
  storage:
    bucket: "agenda"
    prefix: "agenda-dev"
    receipts: false
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackup: false
`

// database.go — catalog connection and SSH tunnel settings.
//
// These live in the same config file as the provider sections
// ([database] and [ssh]) but are host glue: the generation pipeline
// itself never reads them.
package config

import "strconv"

// DatabaseConfig holds the PostgreSQL connection settings used by the
// schema catalog.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// SSHConfig holds SSH tunnel settings for reaching remote databases.
type SSHConfig struct {
	Enabled       bool
	Host          string
	Port          int
	User          string
	KeyPath       string
	KeyPassphrase string
}

func defaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "postgres",
		SSLMode: "prefer",
	}
}

// DSN builds a pgx-compatible connection string. When the SSH tunnel
// is active, the caller overrides Host/Port with the local endpoint.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func applyDatabaseKey(db *DatabaseConfig, key, value string) error {
	switch key {
	case "host":
		db.Host = value
	case "port":
		return assignInt(&db.Port, key, value)
	case "user":
		db.User = value
	case "password":
		db.Password = value
	case "database", "dbname":
		db.Database = value
	case "ssl_mode", "sslmode":
		db.SSLMode = value
	}
	return nil
}

func applySSHKey(ssh *SSHConfig, key, value string) error {
	switch key {
	case "enabled":
		ssh.Enabled = value == "true"
	case "host":
		ssh.Host = value
	case "port":
		return assignInt(&ssh.Port, key, value)
	case "user":
		ssh.User = value
	case "key_path":
		ssh.KeyPath = value
	case "key_passphrase":
		ssh.KeyPassphrase = value
	}
	return nil
}

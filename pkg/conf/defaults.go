package conf

// DatabaseConfig database configuration
var DatabaseConfig = &database{
	Type:    "UNSET",
	Charset: "utf8mb4",
	DBFile:  "mediashelf.db",
	Port:    3306,
}

// SystemConfig system-wide configuration
var SystemConfig = &system{
	Debug:    false,
	Listen:   ":5312",
	LogLevel: "info",
}

// RedisConfig redis server configuration
var RedisConfig = &redis{
	Network:  "tcp",
	Server:   "",
	Password: "",
	DB:       "0",
}

// CORSConfig cross-origin configuration
var CORSConfig = &cors{
	AllowOrigins:     []string{"UNSET"},
	AllowMethods:     []string{"PUT", "POST", "GET", "OPTIONS", "DELETE"},
	AllowHeaders:     []string{"Cookie", "Content-Length", "Content-Type", "X-Requested-With"},
	AllowCredentials: false,
}

// CronConfig scheduled job configuration
var CronConfig = &cron{
	Remediate:      "@hourly",
	GarbageCollect: "@every 30m",
}

// defaultConf is written on first boot when no config file exists
const defaultConf = `[System]
Listen = :5312
SessionSecret = {SessionSecret}
HashIDSalt = {HashIDSalt}
LogLevel = info

[Database]
Type = sqlite3
DBFile = mediashelf.db
`

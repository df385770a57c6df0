package conf

// database configuration
type database struct {
	Type        string
	User        string
	Password    string
	Host        string
	Name        string
	TablePrefix string
	DBFile      string
	Port        int
	Charset     string
}

// system configuration
type system struct {
	Listen        string `validate:"required"`
	Debug         bool
	SessionSecret string
	HashIDSalt    string
	LogLevel      string `validate:"oneof=error warning info debug"`
}

// redis configuration, optional. When Server is empty, the in-memory
// cache and session stores are used instead.
type redis struct {
	Network  string
	Server   string
	Password string
	DB       string
}

// cors configuration
type cors struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// cron expressions for scheduled jobs
type cron struct {
	Remediate      string
	GarbageCollect string
}

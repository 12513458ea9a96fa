package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	Pesapal  Pesapal  `envPrefix:"PESAPAL_"`
	Donation Donation `envPrefix:"DONATION_"`
	Storage  Storage  `envPrefix:"STORAGE_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
	Sweeper  Sweeper  `envPrefix:"SWEEPER_"`
}

type Pesapal struct {
	// BaseAPIURL points at Pesapal directly, or at a relay instance of this
	// service when direct browser calls are blocked.
	BaseAPIURL     string `env:"BASE_API_URL" envDefault:"https://pay.pesapal.com/v3"`
	ConsumerKey    string `env:"CONSUMER_KEY"`
	ConsumerSecret string `env:"CONSUMER_SECRET"`
	IPNID          string `env:"IPN_ID"`
	CallbackURL    string `env:"CALLBACK_URL"`
}

type Donation struct {
	Currency    string `env:"CURRENCY" envDefault:"UGX"`
	CountryCode string `env:"COUNTRY_CODE" envDefault:"UG"`
	MinAmount   int64  `env:"MIN_AMOUNT" envDefault:"1000"`
	Description string `env:"DESCRIPTION" envDefault:"Donation to River of Life Ministries"`
}

type Storage struct {
	Region        string `env:"REGION" envDefault:"us-east-1"`
	Bucket        string `env:"BUCKET"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type SMTP struct {
	Host      string `env:"HOST"`
	Port      string `env:"PORT" envDefault:"587"`
	User      string `env:"USER"`
	Password  string `env:"PASSWORD"`
	From      string `env:"MAIL_FROM"`
	AdminAddr string `env:"ADMIN_ADDR"`
}

type Admin struct {
	JWTSecret   string `env:"JWT_SECRET"`
	TokenTTLMin int    `env:"TOKEN_TTL_MIN" envDefault:"60"`
}

type Sweeper struct {
	Enabled         bool `env:"ENABLED" envDefault:"true"`
	IntervalMin     int  `env:"INTERVAL_MIN" envDefault:"10"`
	PendingAfterMin int  `env:"PENDING_AFTER_MIN" envDefault:"30"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

package cmd

// Config carries every setting the application reads from the environment.
// DBDriver selects the storage backend: "postgres" for deployments, "sqlite"
// for local development and demos.
type Config struct {
	Environment string
	HTTPPort    string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPStartTLS bool

	MediaDir       string
	MediaURLPrefix string

	SellerName    string
	SellerAddress string
	SellerVAT     string
	SellerEmail   string
}

// IsProduction reports whether error responses should hide internal detail.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

package config

type ServiceConfig struct {
	Name        string         `yaml:"name"`
	Environment string         `yaml:"environment"`
	Version     string         `yaml:"version"`
	ClientURL   string         `yaml:"client_url"`
	Currency    string         `yaml:"currency"`
	JWTSecret   string         `yaml:"jwt_secret"`
	Razorpay    RazorpayConfig `yaml:"razorpay"`
	PayPal      PayPalConfig   `yaml:"paypal"`
}

// RazorpayConfig holds the Razorpay checkout keys. The key id is public
// (embedded in the client widget); the key secret never leaves the server.
type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

// PayPalConfig holds the PayPal REST credentials.
type PayPalConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

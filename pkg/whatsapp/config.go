package whatsapp

// Config holds WhatsApp Cloud API configuration.
// CountryCode is prepended to recipient numbers; members register with
// local ten-digit numbers.
type Config struct {
	PhoneNumberID    string `env:"WHATSAPP_PHONE_NUMBER_ID"`
	AccessToken      string `env:"WHATSAPP_TOKEN"`
	BaseURL          string `env:"WHATSAPP_BASE_URL" envDefault:"https://graph.facebook.com/v18.0"`
	TemplateLanguage string `env:"WHATSAPP_TEMPLATE_LANGUAGE" envDefault:"en"`
	CountryCode      string `env:"WHATSAPP_COUNTRY_CODE" envDefault:"91"`
}

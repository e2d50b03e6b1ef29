// Package config provides environment backed configuration for the studio
// services.
package config

import "os"

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Company holds the active business profile. It is loaded once at startup and
// injected into the components that need it (template rendering, invoice
// documents) instead of being looked up per call.
type Company struct {
	Name    string
	Email   string
	Phone   string
	Website string
}

// LoadCompany reads the company profile from the environment.
func LoadCompany() Company {
	return Company{
		Name:    GetEnv("STUDIO_COMPANY_NAME", "Studio"),
		Email:   GetEnv("STUDIO_COMPANY_EMAIL", "hello@studio.local"),
		Phone:   GetEnv("STUDIO_COMPANY_PHONE", ""),
		Website: GetEnv("STUDIO_COMPANY_WEBSITE", ""),
	}
}

// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax, so API keys can stay out of the
// file itself:
//
//	sec_api:
//	  api_key: ${SEC_API_KEY}
package config

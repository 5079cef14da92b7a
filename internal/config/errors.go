package config

import "github.com/ctdp-app/ctdp/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
		Kind:    apperr.Validation,
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
		Kind:    apperr.Validation,
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidMinutes = &apperr.Error{
		Message: "%s minutes must be between %d and %d, got %d",
		Kind:    apperr.Validation,
	}

	errInvalidInterval = &apperr.Error{
		Message: "%s must be greater than zero",
		Kind:    apperr.Validation,
	}

	errNegativeDelay = &apperr.Error{
		Message: "%s must not be negative",
		Kind:    apperr.Validation,
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %s (must be bolt, sqlite, or postgres)",
		Kind:    apperr.Validation,
	}

	errMissingDSN = &apperr.Error{
		Message: "storage.dsn is required for the %s driver",
		Kind:    apperr.Validation,
	}

	errUnknownLogLevel = &apperr.Error{
		Message: "unknown log level: %s",
		Kind:    apperr.Validation,
	}

	errMissingJWTSecret = &apperr.Error{
		Message: "server.jwt_secret must be set to serve the API",
		Kind:    apperr.Validation,
	}

	errMissingBucket = &apperr.Error{
		Message: "backup.s3.bucket must be set to upload backups",
		Kind:    apperr.Validation,
	}
)

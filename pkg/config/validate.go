package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration for consistency. The backend section
// matching Backend.Type is validated; inactive sections are ignored so a
// config file can keep several backends side by side.
func Validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		return describeValidationError(err)
	}

	switch cfg.Backend.Type {
	case "memory":
		// Nothing to configure.
	case "local":
		if cfg.Backend.Local.Root == "" {
			return fmt.Errorf("backend.local.root is required for the local backend")
		}
	case "sftp":
		if err := v.Struct(cfg.Backend.SFTP); err != nil {
			return fmt.Errorf("backend.sftp: %w", describeValidationError(err))
		}
	case "s3":
		if err := v.Struct(cfg.Backend.S3); err != nil {
			return fmt.Errorf("backend.s3: %w", describeValidationError(err))
		}
	}

	return nil
}

// describeValidationError rewrites validator's field errors into readable
// messages.
func describeValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fe.Namespace())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", fe.Namespace(), fe.Param())
		default:
			return fmt.Errorf("%s failed %s validation", fe.Namespace(), fe.Tag())
		}
	}
	return err
}

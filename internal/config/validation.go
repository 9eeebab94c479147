// Package config provides configuration management for the Goleador engine.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("datestr", validateDateStr)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateDateStr validates date strings in cup tie entries
func validateDateStr(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if cfg.Model.MinHistory > cfg.Model.HistoryWindow {
		return fmt.Errorf("model min_history cannot exceed history_window")
	}

	if cfg.Selection.GoalProbMin >= cfg.Selection.GoalProbMax {
		return fmt.Errorf("selection goal_prob_min must be below goal_prob_max")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	seen := make(map[string]bool, len(cfg.Leagues))
	for _, l := range cfg.Leagues {
		if seen[l.Code] {
			return fmt.Errorf("duplicate league code %q", l.Code)
		}
		seen[l.Code] = true
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max", "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

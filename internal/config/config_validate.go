// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateWebSocket(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.PublicDir == "" {
		return fmt.Errorf("PUBLIC_DIR is required")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when DATABASE_DRIVER=mongo")
		}
		if err := validateMongoURI(c.Database.MongoURI); err != nil {
			return fmt.Errorf("MONGO_URI is invalid: %w", err)
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("DB_NAME is required when DATABASE_DRIVER=mongo")
		}
		if c.Database.ConnectTimeout <= 0 {
			return fmt.Errorf("MONGO_TIMEOUT must be positive, got %v", c.Database.ConnectTimeout)
		}
	case DriverBadger:
		if !c.Database.BadgerInMemory && c.Database.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverMongo, DriverBadger, c.Database.Driver)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateEvents() error {
	switch c.Events.Driver {
	case EventsChannel:
	case EventsNATS:
		if c.Events.NATSPort < 1 || c.Events.NATSPort > 65535 {
			return fmt.Errorf("NATS_PORT must be between 1 and 65535, got %d", c.Events.NATSPort)
		}
		if c.Events.NATSPort == c.Server.Port {
			return fmt.Errorf("NATS_PORT must differ from PORT (%d)", c.Server.Port)
		}
	default:
		return fmt.Errorf("EVENTS_DRIVER must be %q or %q, got %q", EventsChannel, EventsNATS, c.Events.Driver)
	}
	if c.Events.SubjectPrefix == "" || strings.ContainsAny(c.Events.SubjectPrefix, " *>") {
		return fmt.Errorf("EVENTS_SUBJECT_PREFIX must be a plain NATS token, got %q", c.Events.SubjectPrefix)
	}
	return nil
}

func (c *Config) validateWebSocket() error {
	if c.WebSocket.MessagesPerSecond <= 0 {
		return fmt.Errorf("WS_MESSAGES_PER_SECOND must be positive, got %v", c.WebSocket.MessagesPerSecond)
	}
	if c.WebSocket.Burst < 1 {
		return fmt.Errorf("WS_BURST must be at least 1, got %d", c.WebSocket.Burst)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

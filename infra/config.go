package infra

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/clearlist/screener-backend/models"
)

type PgConfig struct {
	ConnectionString string
	Database         string
	Hostname         string
	Password         string
	Port             string
	User             string
	SslMode          string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}

	if config.SslMode == "" {
		config.SslMode = "prefer"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s database=%s sslmode=%s",
		config.Hostname, config.Port, config.User, config.Password, config.Database, config.SslMode)
}

// LoadMatchingConfig reads the matcher calibration from a YAML file laid
// over the defaults. An empty path keeps the defaults as is.
func LoadMatchingConfig(path string) (models.MatchingConfig, error) {
	config := models.DefaultMatchingConfig()
	if path == "" {
		return config, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "reading matching config %s", path)
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return config, errors.Wrapf(err, "parsing matching config %s", path)
	}

	if err := validateMatchingConfig(config); err != nil {
		return config, err
	}
	return config, nil
}

func validateMatchingConfig(config models.MatchingConfig) error {
	inRange := func(v float64) bool { return v >= 0 && v <= 100 }
	if !inRange(config.FuzzyThreshold) || !inRange(config.WeakFloor) ||
		!inRange(config.AutoEscalateThreshold) || !inRange(config.ManualReviewThreshold) ||
		!inRange(config.ClearThreshold) {
		return errors.Wrap(models.BadParameterError, "matching config thresholds must be in [0, 100]")
	}
	if config.WeakFloor > config.FuzzyThreshold {
		return errors.Wrap(models.BadParameterError, "weak_floor cannot exceed fuzzy_threshold")
	}
	if config.ClearThreshold > config.ManualReviewThreshold ||
		config.ManualReviewThreshold > config.AutoEscalateThreshold {
		return errors.Wrap(models.BadParameterError, "classification thresholds must be ordered")
	}
	return nil
}

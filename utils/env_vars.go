package utils

import (
	"log"
	"os"
	"time"
)

func GetStringEnv(envVar string, defaultValue string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return envValue
}

func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	stringEnvValue := GetStringEnv(envVar, "")
	if stringEnvValue == "" {
		return defaultValue
	}
	envValue, err := time.ParseDuration(stringEnvValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: '%s' cannot be converted to a duration", envVar, err)
	}
	return envValue
}

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ENV                = "ENV"
	PORT               = "PORT"
	MONGODB_URI        = "MONGODB_URI"
	MYSQL_URI          = "MYSQL_URI"
	REDIS_URI          = "REDIS_URI"
	LOG_LEVEL          = "LOG_LEVEL"
	TIMEZONE           = "TIMEZONE"
	RECONCILE_INTERVAL = "RECONCILE_INTERVAL"

	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"

	DEFAULT_TIMEZONE           = "America/Sao_Paulo"
	DEFAULT_RECONCILE_INTERVAL = 15 * time.Minute
)

var requiredKeys = []string{ENV, PORT, MONGODB_URI}

var allowedKeys = []string{ENV, PORT, MONGODB_URI, MYSQL_URI, REDIS_URI, LOG_LEVEL, TIMEZONE, RECONCILE_INTERVAL}

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

// LoadEnvVariables loads the .env file of the working directory into the
// process environment and panics when the resulting configuration is invalid.
// A missing .env is accepted as long as the process environment already
// carries the required keys.
func LoadEnvVariables() {
	workDir, err := os.Getwd()
	if err != nil {
		panic("[ENV] Erro ao obter o diretório de trabalho: " + err.Error())
	}

	if err := LoadEnvFile(filepath.Join(workDir, ".env")); err != nil {
		panic(err.Error())
	}
}

func LoadEnvFile(filePath string) error {
	values, err := godotenv.Read(filePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("[ENV] Erro ao ler o arquivo %s: %w", filePath, err)
	}

	for key, value := range values {
		if !slices.Contains(allowedKeys, key) {
			return fmt.Errorf("[ENV] Chave '%s' não é permitida. Chaves permitidas: %s",
				key, strings.Join(allowedKeys, ", "))
		}

		if err := os.Setenv(key, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("[ENV] Erro ao definir variável de ambiente %s: %w", key, err)
		}
	}

	return ValidateEnv()
}

func ValidateEnv() error {
	if env := os.Getenv(ENV); env != "" && !slices.Contains(allowedEnvValues, env) {
		return fmt.Errorf("[ENV] Valor inválido para ENV: %s. Valores permitidos: %s",
			env, strings.Join(allowedEnvValues, ", "))
	}

	var missingKeys []string
	for _, key := range requiredKeys {
		if os.Getenv(key) == "" {
			missingKeys = append(missingKeys, key)
		}
	}

	if len(missingKeys) > 0 {
		return fmt.Errorf("[ENV] Variáveis de ambiente obrigatórias ausentes: %s",
			strings.Join(missingKeys, ", "))
	}

	if raw := os.Getenv(RECONCILE_INTERVAL); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("[ENV] Valor inválido para %s: %s", RECONCILE_INTERVAL, raw)
		}
	}

	if tz := os.Getenv(TIMEZONE); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("[ENV] Fuso horário inválido: %s", tz)
		}
	}

	return nil
}

func ReconcileInterval() time.Duration {
	interval, err := time.ParseDuration(os.Getenv(RECONCILE_INTERVAL))
	if err != nil || interval <= 0 {
		return DEFAULT_RECONCILE_INTERVAL
	}
	return interval
}

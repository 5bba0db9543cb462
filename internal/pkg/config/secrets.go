// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManager resolves sensitive configuration values at startup.
type SecretsManager interface {
	GetSecret(ctx context.Context, key string) (string, error)
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
	RefreshSecrets(ctx context.Context) error
}

const secretsCacheTTL = 5 * time.Minute

// AWSSecretsManager reads secrets from a single AWS Secrets Manager
// secret containing a JSON object of key/value pairs.
type AWSSecretsManager struct {
	client     *secretsmanager.Client
	secretName string
	logger     *slog.Logger

	mu        sync.RWMutex
	cache     map[string]string
	lastFetch time.Time
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSecretsManager{
		client:     secretsmanager.NewFromConfig(cfg),
		secretName: secretName,
		cache:      make(map[string]string),
		logger:     logger,
	}, nil
}

// GetSecret retrieves a single secret
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	secrets, err := sm.GetSecrets(ctx, []string{key})
	if err != nil {
		return "", err
	}

	val, ok := secrets[key]
	if !ok {
		return "", fmt.Errorf("secret key %s not found", key)
	}
	return val, nil
}

// GetSecrets retrieves multiple secrets, serving from the local cache
// while it is fresh.
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	if cached, ok := sm.fromCache(keys); ok {
		return cached, nil
	}

	data, err := sm.fetchRemote(ctx)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.cache = data
	sm.lastFetch = time.Now()
	sm.mu.Unlock()

	return sm.pick(data, keys), nil
}

// fromCache answers the lookup only when the cache is fresh and holds
// every requested key.
func (sm *AWSSecretsManager) fromCache(keys []string) (map[string]string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if time.Since(sm.lastFetch) >= secretsCacheTTL || len(sm.cache) == 0 {
		return nil, false
	}

	hit := sm.pick(sm.cache, keys)
	if len(hit) != len(keys) {
		return nil, false
	}
	return hit, true
}

func (sm *AWSSecretsManager) fetchRemote(ctx context.Context) (map[string]string, error) {
	sm.logger.Info("fetching secrets from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret value: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &data); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	return data, nil
}

func (sm *AWSSecretsManager) pick(data map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		val, ok := data[key]
		if !ok {
			sm.logger.Warn("secret key not found in AWS Secrets Manager",
				slog.String("key", key))
			continue
		}
		out[key] = val
	}
	return out
}

// RefreshSecrets invalidates the cache so the next read hits AWS.
func (sm *AWSSecretsManager) RefreshSecrets(ctx context.Context) error {
	sm.mu.Lock()
	sm.cache = make(map[string]string)
	sm.lastFetch = time.Time{}
	sm.mu.Unlock()

	_, err := sm.GetSecrets(ctx, nil)
	return err
}

// EnvSecretsManager reads secrets from environment variables. Used in
// development and in tests.
type EnvSecretsManager struct{}

// NewEnvSecretsManager creates a new environment-based secrets manager
func NewEnvSecretsManager() *EnvSecretsManager {
	return &EnvSecretsManager{}
}

func (em *EnvSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("environment variable %s not set", key)
	}
	return val, nil
}

func (em *EnvSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	secrets := make(map[string]string, len(keys))
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			secrets[key] = val
		}
	}
	return secrets, nil
}

func (em *EnvSecretsManager) RefreshSecrets(ctx context.Context) error {
	return nil
}

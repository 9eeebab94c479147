// Package config provides configuration management for the Goleador engine.
package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	errLoadAWSConfig           = "failed to load AWS config: %w"
	errGetSecretFromAWSSecrets = "failed to get secret from AWS Secrets Manager: %w"
	errParseSecretJSON         = "failed to parse secret JSON: %w"
	errNoSecretDataFound       = "no secret data found in AWS Secrets Manager"
)

// SecretsOverlay represents the structure of secrets stored in AWS
// Secrets Manager. Only fields present in the secret overwrite config.
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	FeedAPIKey       string `json:"feed_api_key"`
}

// LoadSecretsFromAWS fetches the secrets overlay and applies it to cfg.
func LoadSecretsFromAWS(cfg *Config, region, secretName string) error {
	secrets, err := fetchSecretsFromAWS(context.Background(), region, secretName)
	if err != nil {
		return err
	}

	if secrets.DatabasePassword != "" {
		cfg.Database.Password = secrets.DatabasePassword
	}
	if secrets.FeedAPIKey != "" {
		cfg.Feed.APIKey = secrets.FeedAPIKey
	}

	return nil
}

// fetchSecretsFromAWS retrieves secrets from AWS Secrets Manager
func fetchSecretsFromAWS(ctx context.Context, region string, secretName string) (*SecretsOverlay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf(errLoadAWSConfig, err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf(errGetSecretFromAWSSecrets, err)
	}

	var secrets SecretsOverlay
	switch {
	case result.SecretString != nil:
		if err := json.Unmarshal([]byte(*result.SecretString), &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretJSON, err)
		}
	case result.SecretBinary != nil:
		if err := json.Unmarshal(result.SecretBinary, &secrets); err != nil {
			return nil, fmt.Errorf(errParseSecretJSON, err)
		}
	default:
		return nil, fmt.Errorf(errNoSecretDataFound)
	}

	return &secrets, nil
}

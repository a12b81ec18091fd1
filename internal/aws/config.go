package aws

import (
	"context"
	"os"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	sdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

const defaultRegion = "us-east-1"

// ConnectionParams selects the region and credentials for one connection.
// Key is the secret access key and KeyID the access key id; both must be set
// for static credentials to be used.
type ConnectionParams struct {
	Region  string
	Key     string
	KeyID   string
	Profile string
}

// WithDefaults fills empty fields from defaults.
func (p ConnectionParams) WithDefaults(defaults ConnectionParams) ConnectionParams {
	if strings.TrimSpace(p.Region) == "" {
		p.Region = defaults.Region
	}
	if strings.TrimSpace(p.Profile) == "" {
		p.Profile = defaults.Profile
	}
	if strings.TrimSpace(p.Key) == "" && strings.TrimSpace(p.KeyID) == "" {
		p.Key = defaults.Key
		p.KeyID = defaults.KeyID
	}
	return p
}

func (p ConnectionParams) HasStaticCredentials() bool {
	return strings.TrimSpace(p.Key) != "" && strings.TrimSpace(p.KeyID) != ""
}

func ResolveRegion(region string) string {
	region = strings.TrimSpace(region)
	if region == "" {
		region = strings.TrimSpace(os.Getenv("AWS_REGION"))
	}
	if region == "" {
		region = strings.TrimSpace(os.Getenv("AWS_DEFAULT_REGION"))
	}
	return region
}

func ResolveProfile(profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = strings.TrimSpace(os.Getenv("AWS_PROFILE"))
	}
	if profile == "" {
		profile = strings.TrimSpace(os.Getenv("AWS_DEFAULT_PROFILE"))
	}
	return profile
}

// LoadConfig resolves an SDK config for params. Static credentials win over
// the profile, which wins over the default chain.
func LoadConfig(ctx context.Context, params ConnectionParams) (sdkaws.Config, error) {
	loadOpts := []func(*sdkconfig.LoadOptions) error{}
	if profile := ResolveProfile(params.Profile); profile != "" {
		loadOpts = append(loadOpts, sdkconfig.WithSharedConfigProfile(profile))
	}
	if region := ResolveRegion(params.Region); region != "" {
		loadOpts = append(loadOpts, sdkconfig.WithRegion(region))
	}
	if params.HasStaticCredentials() {
		loadOpts = append(loadOpts, sdkconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(strings.TrimSpace(params.KeyID), strings.TrimSpace(params.Key), ""),
		))
	}
	cfg, err := sdkconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vero970/ProjFit/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ConnectionSettings is the parsed form of STORAGE_CONNECTION_STRING.
type ConnectionSettings struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// ParseConnectionString parses "Key=Value;Key=Value" pairs. Recognised keys
// (case-insensitive) are Endpoint, Region, AccessKeyId, SecretAccessKey and
// SessionToken. An empty string yields zero settings, which means the
// default AWS credential chain.
func ParseConnectionString(s string) (ConnectionSettings, error) {
	var cs ConnectionSettings
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return ConnectionSettings{}, fmt.Errorf("malformed connection string segment %q", part)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "endpoint":
			cs.Endpoint = value
		case "region":
			cs.Region = value
		case "accesskeyid":
			cs.AccessKeyID = value
		case "secretaccesskey":
			cs.SecretAccessKey = value
		case "sessiontoken":
			cs.SessionToken = value
		default:
			return ConnectionSettings{}, fmt.Errorf("unknown connection string key %q", key)
		}
	}
	if (cs.AccessKeyID == "") != (cs.SecretAccessKey == "") {
		return ConnectionSettings{}, fmt.Errorf("connection string needs both AccessKeyId and SecretAccessKey")
	}
	return cs, nil
}

// NewS3Client builds an S3 client from the storage settings. Values in the
// connection string take precedence over Region and Endpoint.
func NewS3Client(ctx context.Context, cfg config.Storage) (*s3.Client, string, error) {
	cs, err := ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, "", err
	}

	region := cfg.Region
	if cs.Region != "" {
		region = cs.Region
	}
	endpoint := cfg.Endpoint
	if cs.Endpoint != "" {
		endpoint = cs.Endpoint
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cs.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cs.AccessKeyID, cs.SecretAccessKey, cs.SessionToken),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return client, region, nil
}

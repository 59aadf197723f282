package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultRegion is used when the deployment does not specify one. Most
// S3-compatible providers accept any region as long as the endpoint is set.
const DefaultRegion = "us-east-1"

// Options configure the connection to the storage provider.
type Options struct {
	// Region for request signing. Defaults to DefaultRegion.
	Region string
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	// When set, path-style addressing is used.
	Endpoint string
}

// NewClient builds an S3 client authenticated with the static credential
// pair handed to the pipeline programs (identity as access key, secret as
// the key itself).
func NewClient(ctx context.Context, username, apiKey string, opts Options) (*s3.Client, error) {
	const op = "s3.NewClient"

	if username == "" || apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingCredentials)
	}

	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(username, apiKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load AWS config: %w", op, err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

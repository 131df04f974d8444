package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"file-share-api/config"
	"file-share-api/internal/domain/file"
)

// MaxPresignTTL is the longest expiry S3 accepts for a SigV4 presigned URL.
const MaxPresignTTL = 7 * 24 * time.Hour

type (
	objectAPI interface {
		s3.ListObjectsV2APIClient
		DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	}
	presignAPI interface {
		PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
		PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	}
)

type Client struct {
	logger  *zap.Logger
	bucket  string
	objects objectAPI
	presign presignAPI
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Client, error) {
	if cfg.BucketUploads == "" {
		return nil, fmt.Errorf("S3 bucket name is required")
	}

	var optFns []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	logger.Info("s3 client initialized",
		zap.String("bucket", cfg.BucketUploads),
		zap.String("region", cfg.Region),
		zap.Bool("path_style", cfg.PathStyle),
	)

	return newClient(logger, cfg.BucketUploads, client, s3.NewPresignClient(client)), nil
}

func newClient(logger *zap.Logger, bucket string, objects objectAPI, presign presignAPI) *Client {
	return &Client{
		logger:  logger,
		bucket:  bucket,
		objects: objects,
		presign: presign,
	}
}

// PresignPut returns a URL the client can PUT the object bytes to directly.
func (c *Client) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(clampTTL(ttl)))
	if err != nil {
		return "", fmt.Errorf("presign put %q: %w", key, err)
	}

	return req.URL, nil
}

// PresignGet returns a download URL that makes browsers save the object
// under originalName.
func (c *Client) PresignGet(ctx context.Context, key, originalName string, ttl time.Duration) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(c.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(contentDisposition(originalName)),
	}, s3.WithPresignExpires(clampTTL(ttl)))
	if err != nil {
		return "", fmt.Errorf("presign get %q: %w", key, err)
	}

	return req.URL, nil
}

// ClearBucket deletes every object in the bucket one listing page at a time.
func (c *Client) ClearBucket(ctx context.Context) (file.PurgeResult, error) {
	var res file.PurgeResult

	paginator := s3.NewListObjectsV2Paginator(c.objects, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return res, fmt.Errorf("list objects: %w", err)
		}
		if len(page.Contents) == 0 {
			break
		}

		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			ids = append(ids, types.ObjectIdentifier{Key: obj.Key})
		}

		out, err := c.objects.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(c.bucket),
			Delete: &types.Delete{
				Objects: ids,
				Quiet:   aws.Bool(false),
			},
		})
		if err != nil {
			return res, fmt.Errorf("delete objects: %w", err)
		}

		res.Deleted += len(out.Deleted)
		res.Errors += len(out.Errors)
		for _, e := range out.Errors {
			c.logger.Warn("s3 delete failed",
				zap.String("key", aws.ToString(e.Key)),
				zap.String("code", aws.ToString(e.Code)),
				zap.String("message", aws.ToString(e.Message)),
			)
		}
	}

	c.logger.Info("s3 bucket cleared", zap.Int("deleted", res.Deleted), zap.Int("errors", res.Errors))

	return res, nil
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl > MaxPresignTTL {
		return MaxPresignTTL
	}
	return ttl
}

func contentDisposition(name string) string {
	return fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(url.QueryEscape(name), "+", "%20"))
}

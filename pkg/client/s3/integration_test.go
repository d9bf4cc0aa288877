//go:build integration

package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/client/clienttest"
)

// localstackHelper manages the Localstack container for S3 integration tests.
type localstackHelper struct {
	container testcontainers.Container
	endpoint  string
	sdk       *awss3.Client
}

// newLocalstackHelper starts a Localstack container or connects to an
// existing one via LOCALSTACK_ENDPOINT.
func newLocalstackHelper(t *testing.T) *localstackHelper {
	t.Helper()
	ctx := context.Background()

	if endpoint := os.Getenv("LOCALSTACK_ENDPOINT"); endpoint != "" {
		helper := &localstackHelper{endpoint: endpoint}
		helper.createSDKClient(t)
		return helper
	}

	req := testcontainers.ContainerRequest{
		Image:        "localstack/localstack:3.0",
		ExposedPorts: []string{"4566/tcp"},
		Env: map[string]string{
			"SERVICES":              "s3",
			"DEFAULT_REGION":        "us-east-1",
			"EAGER_SERVICE_LOADING": "1",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("4566/tcp"),
			wait.ForHTTP("/_localstack/health").
				WithPort("4566/tcp").
				WithStartupTimeout(60*time.Second),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start localstack container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "4566")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	helper := &localstackHelper{
		container: container,
		endpoint:  fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
	helper.createSDKClient(t)
	return helper
}

// createSDKClient creates an SDK client configured for Localstack.
func (lh *localstackHelper) createSDKClient(t *testing.T) {
	t.Helper()

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			"test", "test", "",
		)),
	)
	if err != nil {
		t.Fatalf("failed to load AWS config: %v", err)
	}

	lh.sdk = awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.BaseEndpoint = &lh.endpoint
		o.UsePathStyle = true
	})
}

// newTestClient creates a fresh bucket and an unconnected client over it.
func (lh *localstackHelper) newTestClient(t *testing.T) *Client {
	t.Helper()

	bucket := fmt.Sprintf("roamfs-test-%d", time.Now().UnixNano())
	_, err := lh.sdk.CreateBucket(context.Background(), &awss3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		t.Fatalf("failed to create test bucket: %v", err)
	}

	return NewWithSDKClient(lh.sdk, Config{Bucket: bucket})
}

func TestConformance(t *testing.T) {
	helper := newLocalstackHelper(t)

	clienttest.RunConformanceSuite(t, func(t *testing.T) client.Client {
		return helper.newTestClient(t)
	})
}

func TestImplicitDirectories(t *testing.T) {
	helper := newLocalstackHelper(t)
	c := helper.newTestClient(t)
	ctx := context.Background()

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer c.Disconnect(ctx)

	// Put an object without creating its parent directories first.
	_, err := helper.sdk.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String("deep/nested/object.txt"),
		Body:   nil,
	})
	if err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}

	// The prefixes must stat and list as directories.
	entry, err := c.Stat(ctx, "/deep")
	if err != nil {
		t.Fatalf("Stat(/deep) failed: %v", err)
	}
	if !entry.IsDir() {
		t.Error("implicit prefix did not stat as a directory")
	}

	entries, err := c.List(ctx, "/deep")
	if err != nil {
		t.Fatalf("List(/deep) failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "nested" {
		t.Errorf("List(/deep) = %v, want single nested directory", entries)
	}
}

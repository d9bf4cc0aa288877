package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roamfs/roamfs/pkg/client"
	"github.com/roamfs/roamfs/pkg/client/fsclient"
	s3client "github.com/roamfs/roamfs/pkg/client/s3"
	sftpclient "github.com/roamfs/roamfs/pkg/client/sftp"
	"github.com/roamfs/roamfs/pkg/config"
	"github.com/roamfs/roamfs/pkg/metrics"
	promclient "github.com/roamfs/roamfs/pkg/metrics/prometheus"
)

// newBackendClient builds the client selected by the configuration.
func newBackendClient(cfg *config.Config) (client.Client, error) {
	var m metrics.ClientMetrics
	if cfg.Metrics.Enabled {
		m = promclient.NewClientMetrics(prometheus.DefaultRegisterer)
	}

	switch cfg.Backend.Type {
	case "memory":
		return fsclient.NewMemory(fsclient.WithMetrics(m)), nil
	case "local":
		return fsclient.NewLocal(cfg.Backend.Local.Root, fsclient.WithMetrics(m)), nil
	case "sftp":
		return sftpclient.New(cfg.Backend.SFTP, sftpclient.WithMetrics(m)), nil
	case "s3":
		return s3client.New(cfg.Backend.S3, s3client.WithMetrics(m)), nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Backend.Type)
	}
}

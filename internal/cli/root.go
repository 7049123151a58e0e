package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sdtp/internal/transfer"
	"sdtp/pkg/client"
	"sdtp/pkg/config"
	"sdtp/pkg/logger"
	"sdtp/pkg/objectstore"
	"sdtp/pkg/platform"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	configPath string
	cfg        *config.Config
	source     string
	logger     *logger.Logger
	logCloser  io.Closer

	// flag values, applied over the loaded configuration when set
	server      string
	version     string
	cert        string
	key         string
	ca          string
	insecure    bool
	chunkSizeMB int
	logLevel    string
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sdtp",
		Short: "SDTP client",
		Long: `Command line client for an SDTP (Science Data Transfer Protocol) server.

Lists the files the server offers, downloads them over mutual TLS, verifies
each against its declared checksum and stores it on local disk or in an S3
bucket.`,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to configuration file")
	flags.StringVarP(&a.server, "server", "s", "", "SDTP server host, e.g. sdtp.example.com")
	flags.StringVar(&a.version, "api-version", "", "SDTP API version")
	flags.StringVar(&a.cert, "cert", "", "Path to client certificate (or combined certificate and key PEM)")
	flags.StringVar(&a.key, "key", "", "Path to client key file")
	flags.StringVar(&a.ca, "ca", "", "Path to CA certificate file")
	flags.BoolVar(&a.insecure, "insecure", false, "Skip server certificate verification")
	flags.IntVar(&a.chunkSizeMB, "chunk-size-mb", 0, "Object store part size in MiB")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newRegisterCmd(a))
	rootCmd.AddCommand(newConfigHelpCmd())

	return rootCmd
}

// setup loads the configuration and applies explicitly set flags over it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server.Host = a.server
	}
	if flags.Changed("api-version") {
		cfg.Server.Version = a.version
	}
	if flags.Changed("cert") {
		cfg.Security.ClientCertPath = a.cert
		// a certificate given alone is a combined PEM
		if !flags.Changed("key") {
			cfg.Security.ClientKeyPath = ""
		}
	}
	if flags.Changed("key") {
		cfg.Security.ClientKeyPath = a.key
	}
	if flags.Changed("ca") {
		cfg.Security.CACertPath = a.ca
	}
	if flags.Changed("insecure") {
		cfg.Security.InsecureSkipVerify = a.insecure
	}
	if flags.Changed("chunk-size-mb") {
		cfg.Transfer.ChunkSizeMB = a.chunkSizeMB
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	log, closer, err := logger.NewFromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		return err
	}

	a.cfg, a.source, a.logger, a.logCloser = cfg, source, log, closer
	a.logger.Debug("configuration loaded", "source", source)
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

func (a *app) newClient() (*client.SDTPClient, error) {
	c, err := client.NewSDTPClient(client.Options{
		Server:             a.cfg.Server.Host,
		Version:            a.cfg.Server.Version,
		CertPath:           a.cfg.Security.ClientCertPath,
		KeyPath:            a.cfg.Security.ClientKeyPath,
		CAPath:             a.cfg.Security.CACertPath,
		InsecureSkipVerify: a.cfg.Security.InsecureSkipVerify,
		MinTLSVersion:      a.cfg.TLSVersion(),
		Timeout:            a.cfg.Server.Timeout,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	if a.cfg.Security.InsecureSkipVerify {
		a.logger.Warn("server certificate verification is disabled")
	}
	return c, nil
}

// newTransferer selects the sink from configuration: the object store when
// it is enabled with a bucket, the local directory otherwise.
func (a *app) newTransferer(ctx context.Context) (*transfer.Transferer, error) {
	var store transfer.MultipartAPI
	if a.cfg.UseObjectStore() {
		s3Client, err := objectstore.NewS3Client(ctx, a.cfg.ObjectStore)
		if err != nil {
			return nil, err
		}
		store = s3Client
	}

	sink, err := transfer.NewSink(transfer.SinkConfig{
		LocalPath:         a.cfg.Local.Path,
		RefuseUnsafeNames: a.cfg.Local.RefuseUnsafeNames,
		Bucket:            a.cfg.ObjectStore.Bucket,
		KeyPrefix:         a.cfg.ObjectStore.KeyPrefix,
		SegmentSize:       a.cfg.SegmentSize(),
	}, store, platform.NewPlatform(), a.logger)
	if err != nil {
		return nil, err
	}

	return transfer.New(sink, a.logger,
		transfer.WithReadSize(a.cfg.Transfer.ReadBufferSize),
		transfer.WithAbortTimeout(a.cfg.Transfer.AbortTimeout),
	), nil
}

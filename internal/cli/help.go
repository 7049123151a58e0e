package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdtp/pkg/config"
)

func newConfigHelpCmd() *cobra.Command {
	var writePath string

	cmd := &cobra.Command{
		Use:   "config-help",
		Short: "Show configuration file examples",
		Long:  "Display the sdtp.yaml file format, the environment variables it honors and the search paths",
		Args:  cobra.NoArgs,
		// needs no configuration of its own
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if writePath != "" {
				if err := config.GenerateDefaultConfig(writePath); err != nil {
					return fmt.Errorf("failed to write default configuration: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", writePath)
				return nil
			}
			return runConfigHelp(cmd)
		},
	}

	cmd.Flags().StringVar(&writePath, "write", "", "Write the default configuration to this path")

	return cmd
}

func runConfigHelp(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "SDTP Client Configuration Help")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Example sdtp.yaml:")
	fmt.Fprintln(out, "------------------")
	fmt.Fprintln(out, `server:
  host: "sdtp.example.com"
  version: "v1"
  timeout: "30s"

security:
  clientCertPath: "./certs/client.pem"   # combined certificate and key
  clientKeyPath: ""
  caCertPath: "./certs/ca.pem"
  minTlsVersion: "1.2"

transfer:
  chunkSizeMB: 8
  readBufferSize: 8192
  concurrency: 2
  pageSize: 100
  abortTimeout: "30s"

local:
  path: "/data/incoming"

objectStore:
  enabled: false
  bucket: "science-data"
  region: "us-east-1"
  keyPrefix: "incoming/"

logging:
  level: "INFO"
  format: "text"
  output: "stderr"`)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "File locations searched (in order):")
	fmt.Fprintln(out, "1. --config flag")
	fmt.Fprintln(out, "2. $SDTP_CONFIG_PATH")
	fmt.Fprintln(out, "3. ./sdtp.yaml")
	fmt.Fprintln(out, "4. ./config/sdtp.yaml")
	fmt.Fprintln(out, "5. ~/.sdtp/config.yaml")
	fmt.Fprintln(out, "6. /etc/sdtp/config.yaml")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables (override the file, also read from ./.env):")
	fmt.Fprintln(out, "  SDTP_SERVER, SDTP_VERSION, SDTP_CLIENT_CERT, SDTP_CLIENT_KEY, SDTP_CA_CERT")
	fmt.Fprintln(out, "  SDTP_CHUNK_SIZE_MB, SDTP_CONCURRENCY, LOCAL_FILE_PATH")
	fmt.Fprintln(out, "  SDTP_USE_S3, S3_BUCKET, AWS_DEFAULT_REGION, S3_ENDPOINT_URL")
	fmt.Fprintln(out, "  AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, LOG_LEVEL, LOG_FORMAT")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage examples:")
	fmt.Fprintln(out, "  sdtp list                                   # uses sdtp.yaml from the search paths")
	fmt.Fprintln(out, "  sdtp --config=my-config.yaml get 1042       # uses a custom config file")
	fmt.Fprintln(out, "  sdtp config-help --write ~/.sdtp/config.yaml")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Direct connection (bypasses config file values):")
	fmt.Fprintln(out, "  sdtp --server=sdtp.example.com --cert=client.crt --key=client.key --ca=ca.pem list")

	return nil
}

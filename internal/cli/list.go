package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"sdtp/internal/domain"
	"sdtp/pkg/client"
)

type listOptions struct {
	max    int
	start  int64
	tags   map[string]string
	all    bool
	output string
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files offered by the server",
		Long: `List the files the server offers.

Examples:
  sdtp list
  sdtp list --max 50 --start 1200
  sdtp list --tag instrument=magnetometer --all
  sdtp list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, a, opts)
		},
	}

	cmd.Flags().IntVar(&opts.max, "max", 0, "Maximum number of files to return")
	cmd.Flags().Int64Var(&opts.start, "start", 0, "First file id to return")
	cmd.Flags().StringToStringVar(&opts.tags, "tag", nil, "Filter by tag (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Page through the whole catalog")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")

	return cmd
}

func runList(cmd *cobra.Command, a *app, opts *listOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	sdtpClient, err := a.newClient()
	if err != nil {
		return err
	}
	defer sdtpClient.Close()

	files, err := fetchFiles(cmd, sdtpClient, a.cfg.Transfer.PageSize, opts)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.output == "json" {
		return writeFilesJSON(out, files)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No files found")
		return nil
	}
	writeFilesTable(out, files)
	return nil
}

func fetchFiles(cmd *cobra.Command, sdtpClient *client.SDTPClient, pageSize int, opts *listOptions) ([]domain.FileDescriptor, error) {
	if opts.all {
		return sdtpClient.ListAll(cmd.Context(), pageSize, opts.tags)
	}

	listOpts := domain.ListOptions{Tags: opts.tags}
	if cmd.Flags().Changed("max") {
		listOpts.MaxFiles = &opts.max
	}
	if cmd.Flags().Changed("start") {
		listOpts.StartFileID = &opts.start
	}
	return sdtpClient.ListFiles(cmd.Context(), listOpts)
}

func writeFilesJSON(w io.Writer, files []domain.FileDescriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(domain.FileList{Files: files})
}

func writeFilesTable(w io.Writer, files []domain.FileDescriptor) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Size", "Checksum", "Tags"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, f := range files {
		size := "-"
		if f.Size > 0 {
			size = humanize.IBytes(uint64(f.Size))
		}
		table.Append([]string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			size,
			f.Checksum,
			formatTags(f.Tags),
		})
	}
	table.Render()
}

func formatTags(tags map[string]string) string {
	keys := lo.Keys(tags)
	sort.Strings(keys)
	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return k + "=" + tags[k]
	}), ",")
}

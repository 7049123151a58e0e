package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sdtp/internal/domain"
	"sdtp/internal/transfer"
	"sdtp/pkg/client"
)

type getOptions struct {
	all         bool
	tags        map[string]string
	deleteAfter bool
	concurrency int
	failFast    bool
}

func newGetCmd(a *app) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get [file-id...]",
		Short: "Download, verify and store files",
		Long: `Download files from the server, verify each against its declared checksum and
store it locally or in the configured S3 bucket. A file that fails verification
leaves nothing behind at the destination.

Examples:
  sdtp get 1042
  sdtp get 1042 1043 --delete-after
  sdtp get --all --tag instrument=magnetometer --concurrency 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, a, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Fetch every file in the catalog")
	cmd.Flags().StringToStringVar(&opts.tags, "tag", nil, "With --all, only fetch files with this tag (key=value, repeatable)")
	cmd.Flags().BoolVar(&opts.deleteAfter, "delete-after", false, "Delete each file from the server after a verified transfer")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Number of parallel transfers (default from configuration)")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop starting new transfers after the first failure")

	return cmd
}

// fileOutcome is the result of one file, kept at the index of its descriptor.
type fileOutcome struct {
	file   domain.FileDescriptor
	result *transfer.Result
	err    error
}

func runGet(cmd *cobra.Command, a *app, opts *getOptions, args []string) error {
	if opts.all == (len(args) > 0) {
		return fmt.Errorf("give either file ids or --all")
	}
	if len(opts.tags) > 0 && !opts.all {
		return fmt.Errorf("--tag filters the catalog and requires --all")
	}

	ids, err := parseFileIDs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	sdtpClient, err := a.newClient()
	if err != nil {
		return err
	}
	defer sdtpClient.Close()

	var files []domain.FileDescriptor
	if opts.all {
		files, err = sdtpClient.ListAll(ctx, a.cfg.Transfer.PageSize, opts.tags)
	} else {
		files, err = lookupFiles(ctx, sdtpClient, ids)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files to fetch")
		return nil
	}

	transferer, err := a.newTransferer(ctx)
	if err != nil {
		return err
	}

	concurrency := a.cfg.Transfer.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = opts.concurrency
	}
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	a.logger.Info("fetching files", "count", len(files), "sink", transferer.Sink().Kind(),
		"concurrency", concurrency)

	outcomes := fetchAll(ctx, sdtpClient, transferer, files, concurrency, opts)
	writeOutcomesTable(cmd.OutOrStdout(), outcomes)

	return errors.Join(lo.FilterMap(outcomes, func(o fileOutcome, _ int) (error, bool) {
		return o.err, o.err != nil
	})...)
}

// fetchAll runs the transfers with at most concurrency in flight. Each
// transfer is ordered internally; transfers are independent of each other.
func fetchAll(ctx context.Context, sdtpClient *client.SDTPClient, transferer *transfer.Transferer,
	files []domain.FileDescriptor, concurrency int, opts *getOptions) []fileOutcome {

	outcomes := make([]fileOutcome, len(files))
	for i, f := range files {
		outcomes[i].file = f
	}

	// with fail-fast the first failure cancels the group context so that
	// pending transfers are skipped and running ones abort
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range files {
		i := i
		g.Go(func() error {
			if err := runCtx.Err(); err != nil {
				outcomes[i].err = fmt.Errorf("file %s: skipped: %w", files[i], err)
				return nil
			}

			res, err := fetchOne(runCtx, sdtpClient, transferer, files[i], opts.deleteAfter)
			outcomes[i].result, outcomes[i].err = res, err
			if err != nil && opts.failFast {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func fetchOne(ctx context.Context, sdtpClient *client.SDTPClient, transferer *transfer.Transferer,
	file domain.FileDescriptor, deleteAfter bool) (*transfer.Result, error) {

	res, err := transferer.Get(ctx, file, sdtpClient)
	if err != nil {
		return nil, err
	}

	if deleteAfter {
		if err := sdtpClient.DeleteFile(ctx, file.ID); err != nil {
			return res, fmt.Errorf("file %s stored at %s but not deleted from server: %w",
				file, res.Destination, err)
		}
	}
	return res, nil
}

// lookupFiles resolves each id to its catalog entry with a one-file listing
// starting at that id.
func lookupFiles(ctx context.Context, sdtpClient *client.SDTPClient, ids []int64) ([]domain.FileDescriptor, error) {
	files := make([]domain.FileDescriptor, 0, len(ids))
	for _, id := range ids {
		page, err := sdtpClient.ListFiles(ctx, domain.ListOptions{
			MaxFiles:    lo.ToPtr(1),
			StartFileID: lo.ToPtr(id),
		})
		if err != nil {
			return nil, err
		}
		if len(page) == 0 || page[0].ID != id {
			return nil, fmt.Errorf("file %d not found in catalog", id)
		}
		files = append(files, page[0])
	}
	return files, nil
}

func parseFileIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid file id %q", arg)
		}
		ids = append(ids, id)
	}
	return lo.Uniq(ids), nil
}

func writeOutcomesTable(w io.Writer, outcomes []fileOutcome) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Status", "Size", "Parts", "Elapsed", "Destination"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, o := range outcomes {
		row := []string{strconv.FormatInt(o.file.ID, 10), o.file.Name}
		if o.err != nil {
			row = append(row, "FAILED", "-", "-", "-", o.err.Error())
		} else {
			row = append(row,
				"OK",
				humanize.IBytes(uint64(o.result.Bytes)),
				strconv.Itoa(o.result.Parts),
				o.result.Elapsed.Round(time.Millisecond).String(),
				o.result.Destination,
			)
		}
		table.Append(row)
	}
	table.Render()
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <file-id | first-last>",
		Short: "Delete a file or an inclusive range of files from the server",
		Long: `Delete a file, or every file in an inclusive id range, from the server catalog.

Examples:
  sdtp delete 1042
  sdtp delete 1000-1099`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, a, args[0])
		},
	}

	return cmd
}

func runDelete(cmd *cobra.Command, a *app, arg string) error {
	from, to, err := parseFileRange(arg)
	if err != nil {
		return err
	}

	sdtpClient, err := a.newClient()
	if err != nil {
		return err
	}
	defer sdtpClient.Close()

	if from == to {
		if err := sdtpClient.DeleteFile(cmd.Context(), from); err != nil {
			return fmt.Errorf("failed to delete file %d: %w", from, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted file %d\n", from)
		return nil
	}

	if err := sdtpClient.DeleteFileRange(cmd.Context(), from, to); err != nil {
		return fmt.Errorf("failed to delete files %d-%d: %w", from, to, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted files %d-%d\n", from, to)
	return nil
}

// parseFileRange accepts "id" or "first-last". A single id yields from == to.
func parseFileRange(arg string) (int64, int64, error) {
	first, last, isRange := strings.Cut(arg, "-")

	from, err := strconv.ParseInt(first, 10, 64)
	if err != nil || from < 0 {
		return 0, 0, fmt.Errorf("invalid file id %q", arg)
	}
	if !isRange {
		return from, from, nil
	}

	to, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid file id range %q", arg)
	}
	if from > to {
		return 0, 0, fmt.Errorf("invalid file id range %q: first id is greater than last", arg)
	}
	return from, to, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/hostsnap/internal/snapname"
	"github.com/five82/hostsnap/internal/snapshot"
)

func newUploadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload snapshot files",
		Long: `Upload one or more snapshot files. Each name must look like
` + snapname.Pattern + `
and is checked before anything is sent.

Examples:
  hostsnap upload host_10.0.0.5_2024-01-15T10-30-00Z.json
  hostsnap upload snapshots/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				name, err := uploadFile(cmd, client, path)
				if err != nil {
					failed++
					logger.Debug("upload failed", "file", path, "error", err)
					fmt.Fprintf(out, "%s %s: %v\n", red("✗"), path, err)
					continue
				}
				fmt.Fprintf(out, "%s %s  %s  %s\n", green("✓"), name.Filename, bold(name.Host), takenAt(name))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d uploads failed", failed, len(args))
			}
			return nil
		},
	}
}

func uploadFile(cmd *cobra.Command, client snapshot.Gateway, path string) (snapname.Name, error) {
	// Checked before opening so a bad name never touches the disk or the API.
	name, err := snapname.Validate(path)
	if err != nil {
		var verr *snapname.ValidationError
		if errors.As(err, &verr) {
			return snapname.Name{}, errors.New(verr.Reason)
		}
		return snapname.Name{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return snapname.Name{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := client.Upload(cmd.Context(), name.Filename, f); err != nil {
		return snapname.Name{}, err
	}
	return name, nil
}

// takenAt renders the capture time encoded in the name, or the raw file-safe
// timestamp when it is not a real instant.
func takenAt(name snapname.Name) string {
	t, ok := name.Time()
	if !ok {
		return name.Timestamp
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

package cmd

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pixelgate/pixelgate/internal/display"
	"github.com/pixelgate/pixelgate/internal/selection"
	"github.com/pixelgate/pixelgate/internal/upload"
	"github.com/spf13/cobra"
)

var errSubmitFailed = errors.New("submission failed")

func newSubmitCmd() *cobra.Command {
	var server string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "submit [image]",
		Short: "Send one image to the gateway and save the processed result",
		Long: `Posts an image to /process on the gateway and saves the processed image
next to the other outputs, printing the same status messages as the web page.

Without an image argument nothing is sent and the command fails.`,
		Example: `  # Process a photo against a local gateway
  pixelgate submit family.jpg

  # Use a remote gateway and keep results in ./out
  pixelgate submit family.jpg --server https://pixelgate.example.org --output-dir out`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("server") {
				server = cfg.Client.Server
			}

			files, err := selection.FromPaths(args...)
			if err != nil {
				return err
			}

			term := display.NewTerminal(cmd.OutOrStdout())
			controller, err := upload.New(server, files, term, term, term,
				upload.WithObjectStore(display.FileStore{Dir: outputDir, Stem: outputStem(args)}),
				upload.WithHTTPClient(&http.Client{}),
			)
			if err != nil {
				return err
			}

			controller.SubmitSelectedImage(cmd.Context())

			if term.Status().Color == upload.ColorError {
				return errSubmitFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:5000", "Gateway origin (overrides config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "Directory the processed image is written to")

	return cmd
}

func outputStem(args []string) string {
	if len(args) == 0 {
		return "procesada"
	}
	base := filepath.Base(args[0])
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_procesada"
}

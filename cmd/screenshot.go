package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mj1618/sapgui-cli/internal/hardcopy"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/session"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a hardcopy of a session window",
	Long: `Capture a hardcopy of --window through the host, convert it to PNG or JPEG
and write it to --output, or to stdout as base64 for easy agent
consumption.`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().String("image", "png", "Image format: png, jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 1.0, "Scale factor 0.1-1.0 (for token efficiency)")
	screenshotCmd.Flags().Bool("caption", false, "Draw the window title above the image")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("image")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")
	caption, _ := cmd.Flags().GetBool("caption")

	if scale < 0.1 || scale > 1.0 {
		return fmt.Errorf("scale must be between 0.1 and 1.0")
	}

	dir, err := os.MkdirTemp("", "sapgui-cli-hardcopy")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	return withSession(func(ctl *session.Controller) error {
		window := app.cfg.Window
		path, err := ctl.HardCopy(window, filepath.Join(dir, "window.bmp"), platform.ImageBMP)
		if err != nil {
			return err
		}
		opts := hardcopy.Options{Format: format, Quality: quality, Scale: scale}
		if caption {
			if opts.Caption, err = ctl.Text(window); err != nil {
				return err
			}
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open hardcopy: %w", err)
		}
		defer src.Close()

		var buf bytes.Buffer
		if err := hardcopy.Convert(src, &buf, opts); err != nil {
			return err
		}

		if out != "" {
			return os.WriteFile(out, buf.Bytes(), 0644)
		}

		encoder := base64.NewEncoder(base64.StdEncoding, output.Stdout)
		if _, err := encoder.Write(buf.Bytes()); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
		fmt.Fprintln(output.Stdout)
		return nil
	})
}

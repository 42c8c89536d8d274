package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vcrobe/editarray/markup"
)

const pageHeader = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>EditArray</title></head><body>
`

const pageFooter = `
</body></html>
`

// NewRenderCommand creates the render command
func NewRenderCommand() *cobra.Command {
	var (
		configPath string
		outputPath string
		page       bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render EditArray markup from a YAML description",
		Long: `Render the container, items, template and Add button described by a YAML
file. Invalid descriptions render the diagnostic panel instead.

Examples:
  # Render a fragment to stdout
  editarray render --config orders.yaml

  # Render a full page that "editarray run" can load
  editarray render --config orders.yaml --page -o orders.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, configPath)
			if err != nil {
				return err
			}
			defer in.Close()

			opts, err := markup.LoadOptions(in)
			if err != nil {
				return err
			}
			if strict {
				if err := opts.Validate(); err != nil {
					return err
				}
			}

			return withOutput(cmd, outputPath, func(w io.Writer) error {
				if page {
					if _, err := io.WriteString(w, pageHeader); err != nil {
						return fmt.Errorf("write page: %w", err)
					}
				}
				if err := markup.RenderHTML(w, opts); err != nil {
					return err
				}
				if page {
					if _, err := io.WriteString(w, pageFooter); err != nil {
						return fmt.Errorf("write page: %w", err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "-", "YAML description to render (- for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the fragment in a complete HTML page")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of rendering the diagnostic panel")

	return cmd
}

package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vcrobe/editarray/callbacks"
	"github.com/vcrobe/editarray/console"
	"github.com/vcrobe/editarray/dom"
	"github.com/vcrobe/editarray/editarray"
	"github.com/vcrobe/editarray/script"
	"github.com/vcrobe/editarray/validation"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		pagePath   string
		scriptPath string
		outputPath string
		validate   bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay an interaction script against an EditArray page",
		Long: `Load an HTML page, initialise the EditArray engine on it, replay the steps
of a YAML script and print the resulting page.

The callbacks notifyUpdated, notifyDeleted, validItem and confirmDone are
registered and may be referenced from data-on-* attributes.

Examples:
  editarray run --page orders.html --script add-order.yaml
  editarray run --page orders.html --script add-order.yaml --validate -o out.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				restore := console.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
				defer restore()
			}

			in, err := openInput(cmd, pagePath)
			if err != nil {
				return err
			}
			doc, err := dom.Parse(in)
			in.Close()
			if err != nil {
				return err
			}

			var s script.Script
			if scriptPath != "" {
				sf, err := openInput(cmd, scriptPath)
				if err != nil {
					return err
				}
				s, err = script.Load(sf)
				sf.Close()
				if err != nil {
					return err
				}
			}

			var v *validation.Validator
			if validate {
				v = validation.New()
				detach := validation.Attach(doc, v)
				defer detach()
			}

			eng := editarray.New(doc, editarray.Options{Registry: DefaultRegistry(v)})
			eng.Init()
			defer eng.Close()

			if err := script.Run(eng, s); err != nil {
				return err
			}

			return withOutput(cmd, outputPath, func(w io.Writer) error {
				return doc.Render(w)
			})
		},
	}

	cmd.Flags().StringVarP(&pagePath, "page", "p", "-", "HTML page to load (- for stdin)")
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "YAML interaction script")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate edit containers before they are saved")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine messages to stderr")

	return cmd
}

// DefaultRegistry returns the callbacks available to pages run by the CLI.
// v may be nil, in which case validItem inspects existing messages only.
func DefaultRegistry(v *validation.Validator) *callbacks.Registry {
	guard := callbacks.GuardOptions{}
	if v != nil {
		guard.Validator = v
	}

	r := callbacks.NewRegistry()
	r.MustRegister("notifyUpdated", callbacks.Notifier(callbacks.NotifierOptions{Message: "EditArray: item updated"}))
	r.MustRegister("notifyDeleted", callbacks.Notifier(callbacks.NotifierOptions{Message: "EditArray: item deleted"}))
	r.MustRegister("validItem", callbacks.ValidationGuard(guard))
	r.MustRegister("confirmDone", callbacks.ConfirmGuard("Save changes to {id}?"))
	return r
}

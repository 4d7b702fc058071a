package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/regintel/regintel/internal/application/pipeline"
	"github.com/regintel/regintel/internal/infrastructure/monitoring/logging"
	"github.com/regintel/regintel/pkg/errors"
)

var (
	extractFile      string
	extractURL       string
	extractDomain    string
	extractMarkdown  string
	extractRegistrar bool
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract legal-entity data from an HTML page",
		Long:  "Reads an HTML document (file or stdin), runs the multi-pass extraction\npipeline and prints the resulting entity record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd)
		},
	}

	cmd.Flags().StringVarP(&extractFile, "file", "f", "-", "HTML file to read ('-' for stdin)")
	cmd.Flags().StringVarP(&extractURL, "url", "u", "", "source URL of the page (required)")
	cmd.Flags().StringVar(&extractDomain, "domain", "", "override the domain derived from --url")
	cmd.Flags().StringVar(&extractMarkdown, "markdown", "", "pre-rendered markdown file for JS-heavy pages")
	cmd.Flags().BoolVar(&extractRegistrar, "registrar", false, "also query RDAP/WHOIS and fuse the registrar record")
	cmd.MarkFlagRequired("url")

	return cmd
}

func runExtract(cmd *cobra.Command) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	rawHTML, err := readInput(cmd, extractFile)
	if err != nil {
		return err
	}

	var markdown string
	if extractMarkdown != "" {
		data, readErr := os.ReadFile(extractMarkdown)
		if readErr != nil {
			return errors.Wrap(readErr, errors.ErrCodeBadRequest, "reading markdown file")
		}
		markdown = string(data)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
	defer cancel()

	rec := cliCtx.Service.Extract(ctx, pipeline.PageInput{
		RawHTML:          rawHTML,
		FinalURL:         extractURL,
		Domain:           extractDomain,
		RenderedMarkdown: markdown,
	})

	if extractRegistrar {
		domain := extractDomain
		if domain == "" {
			domain = extractURL
		}
		reg, lookupErr := cliCtx.Service.LookupRegistrar(ctx, domain)
		if lookupErr != nil {
			cliCtx.Logger.Warn("registrar lookup failed", logging.Err(lookupErr))
		} else if reg != nil {
			cliCtx.Service.FuseRegistrar(rec, reg)
			rec.Registrar = reg
		}
	}

	return PrintResult(cmd, rec)
}

// readInput reads the HTML payload from a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeBadRequest, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeBadRequest, "reading input file")
	}
	return string(data), nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/facet/internal/logging"
	"github.com/dshills/facet/internal/output"
	"github.com/dshills/facet/internal/review"
)

var (
	flagInput          string
	flagFormats        []string
	flagOut            string
	flagTheme          string
	flagTemplate       string
	flagTemplateFile   string
	flagNoSuggestions  bool
	flagNoLineNumbers  bool
	flagNoMetadata     bool
	flagFilesAnalyzed  int
	flagRepositoryURL  string
	flagPRNumber       int
	flagFailOnFindings bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render findings from a JSON file into one or more formats",
	Long: `Render reads findings JSON (a bare array or {"findings": [...], "context": {...}})
and renders each requested format. Formats are given as NAME or NAME:SUBFORMAT,
e.g. terminal:compact, markdown:pr_comment, json:sarif.

With one format the artifact goes to --out or stdout; with several, --out is
treated as a filename prefix and each artifact gets a format suffix.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagInput, "input", "", "Findings JSON file (default: stdin)")
	renderCmd.Flags().StringSliceVar(&flagFormats, "format", []string{"terminal"}, "Output format(s), NAME or NAME:SUBFORMAT")
	renderCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&flagTheme, "theme", "", "HTML dashboard theme")
	renderCmd.Flags().StringVar(&flagTemplate, "template", "", "Template name for the template format")
	renderCmd.Flags().StringVar(&flagTemplateFile, "template-file", "", "File containing custom template content")
	renderCmd.Flags().BoolVar(&flagNoSuggestions, "no-suggestions", false, "Omit suggestions from output")
	renderCmd.Flags().BoolVar(&flagNoLineNumbers, "no-line-numbers", false, "Omit line numbers from output")
	renderCmd.Flags().BoolVar(&flagNoMetadata, "no-metadata", false, "Omit the metadata block from output")
	renderCmd.Flags().IntVar(&flagFilesAnalyzed, "files-analyzed", 0, "Files-analyzed count for the render context")
	renderCmd.Flags().StringVar(&flagRepositoryURL, "repository-url", "", "Repository URL for the render context")
	renderCmd.Flags().IntVar(&flagPRNumber, "pr-number", 0, "Pull request number for the render context")
	renderCmd.Flags().BoolVar(&flagFailOnFindings, "fail-on-findings", false, "Exit 1 when any findings are present")
}

// findingsDocument is the accepted input shape.
type findingsDocument struct {
	Findings []review.Finding      `json:"findings"`
	Context  *review.OutputContext `json:"context,omitempty"`
}

func runRender(cmd *cobra.Command, args []string) error {
	findings, octx, err := readFindings(flagInput)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	if flagFilesAnalyzed > 0 {
		octx.FilesAnalyzed = flagFilesAnalyzed
	}
	if flagRepositoryURL != "" {
		octx.RepositoryURL = flagRepositoryURL
	}
	if flagPRNumber > 0 {
		octx.PRNumber = flagPRNumber
	}

	cfg := output.DefaultFormatterConfig()
	cfg.ShowSuggestions = !flagNoSuggestions
	cfg.ShowLineNumbers = !flagNoLineNumbers
	cfg.IncludeMetadata = !flagNoMetadata

	opts, err := renderOptions()
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	reqs := make([]output.OutputRequest, 0, len(flagFormats))
	for _, entry := range flagFormats {
		formatType, subFormat, _ := strings.Cut(entry, ":")
		reqs = append(reqs, output.OutputRequest{
			FormatType: formatType,
			SubFormat:  subFormat,
			Findings:   findings,
			Context:    octx,
			Config:     cfg,
			Options:    opts,
		})
	}

	router := output.NewRouter(output.NewRegistry(), logging.NewLogger("facet"))
	responses := router.FormatMultiple(context.Background(), reqs)

	failed := false
	for i, resp := range responses {
		if !resp.Success {
			fmt.Fprintf(os.Stderr, "render %s failed: %s\n", flagFormats[i], resp.Error)
			failed = true
			continue
		}
		if err := writeArtifact(resp.Output, outPath(i, len(responses))); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
	}

	if failed {
		exitCode = ExitRuntimeError
	} else if flagFailOnFindings && len(findings) > 0 {
		exitCode = ExitFindings
	}
	return nil
}

func readFindings(path string) ([]review.Finding, review.OutputContext, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, review.OutputContext{}, fmt.Errorf("opening findings file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, review.OutputContext{}, fmt.Errorf("reading findings: %w", err)
	}

	// Bare array first, then the wrapped document shape.
	var findings []review.Finding
	if err := json.Unmarshal(data, &findings); err == nil {
		return findings, review.NewOutputContext("files", 0), nil
	}

	var doc findingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, review.OutputContext{}, fmt.Errorf("parsing findings JSON: %w", err)
	}
	octx := review.NewOutputContext("files", 0)
	if doc.Context != nil {
		octx = *doc.Context
		if octx.RunID == "" {
			octx.RunID = review.NewOutputContext("", 0).RunID
		}
	}
	return doc.Findings, octx, nil
}

func renderOptions() (map[string]string, error) {
	opts := make(map[string]string)
	if flagTheme != "" {
		opts["theme"] = flagTheme
	}
	if flagTemplate != "" {
		opts["template_name"] = flagTemplate
	}
	if flagTemplateFile != "" {
		content, err := os.ReadFile(flagTemplateFile)
		if err != nil {
			return nil, fmt.Errorf("reading template file: %w", err)
		}
		opts["template_content"] = string(content)
	}
	return opts, nil
}

func outPath(i, total int) string {
	if flagOut == "" {
		return ""
	}
	if total == 1 {
		return flagOut
	}
	formatType, subFormat, _ := strings.Cut(flagFormats[i], ":")
	suffix := formatType
	if subFormat != "" {
		suffix += "-" + subFormat
	}
	return flagOut + "." + suffix
}

func writeArtifact(out *output.FormattedOutput, path string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(out.Content)
		return err
	}
	if err := os.WriteFile(path, []byte(out.Content), 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}

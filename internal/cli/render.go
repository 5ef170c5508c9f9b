package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quizframe/pkg/cache"
	"github.com/matzehuels/quizframe/pkg/document"
	"github.com/matzehuels/quizframe/pkg/errors"
	"github.com/matzehuels/quizframe/pkg/manifest"
)

// Output formats supported by the render command and the HTTP service.
const (
	FormatHTML  = "html"
	FormatJSON  = "json"  // {"html": ...}
	FormatJSONZ = "jsonz" // {"html_compressed": base64(zlib)}
)

// validFormats is the set of supported output formats, which doubles as
// the set of recognized output file extensions.
var validFormats = map[string]bool{FormatHTML: true, FormatJSON: true, FormatJSONZ: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "html", "json", "jsonz"
	compact bool     // collapse whitespace in the rendered HTML
	blocks  bool     // render each block as its own standalone page
	noCache bool     // bypass the render cache
}

// newRenderCmd creates the render command. It reads a JSON manifest and
// writes the rendered document in one or more output formats, going
// through the render cache keyed by manifest content and options.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a manifest to self-contained HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json, jsonz (comma-separated)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "collapse whitespace in the rendered HTML")
	cmd.Flags().BoolVar(&opts.blocks, "blocks", false, "render each block as its own standalone page")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["html"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{FormatHTML}
	}
	return strings.Split(s, ",")
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'html', 'json', or 'jsonz')", f)
		}
	}
	return nil
}

// renderFormat renders the composed document in the requested format.
func renderFormat(c *document.Composer, format string, compact bool) (string, error) {
	switch format {
	case FormatHTML:
		return c.RenderDocument(compact), nil
	case FormatJSON:
		return c.RenderJSON(compact)
	case FormatJSONZ:
		return c.RenderCompressed()
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.html, .json, .jsonz), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath resolves the output file for one format. An explicit
// output path is used as-is when only one format was requested.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	return basePath(output, input) + "." + format
}

// runRender loads the manifest, renders the requested formats through
// the cache, and writes one file per format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	raw, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", input)
		}
		return err
	}
	doc, err := manifest.Read(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	comp, err := doc.Composer()
	if err != nil {
		return err
	}
	logger.Debugf("Loaded manifest: %d blocks", comp.Len())
	printKeyValue("Title", comp.Title())
	printKeyValue("Blocks", fmt.Sprintf("%d", comp.Len()))

	if opts.blocks {
		return runRenderBlocks(input, comp, opts)
	}

	store, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	p := newProgress(logger)
	for _, format := range opts.formats {
		key := cache.RenderKey(raw, format, opts.compact)

		data, hit, err := store.Get(ctx, key)
		if err != nil {
			logger.Debugf("Cache lookup failed: %v", err)
			hit = false
		}
		if !hit {
			out, err := renderFormat(comp, format, opts.compact)
			if err != nil {
				return err
			}
			data = []byte(out)
			if err := store.Set(ctx, key, data, cfg.Cache.TTL.Duration); err != nil {
				logger.Debugf("Cache store failed: %v", err)
			}
		}

		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		printFile(path, hit)
	}
	p.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))

	printNextStep("Serve documents over HTTP", appName+" serve")
	return nil
}

// runRenderBlocks writes each block as its own standalone page. Block
// pages always render fresh since their count depends on the manifest.
func runRenderBlocks(input string, comp *document.Composer, opts *renderOpts) error {
	base := basePath(opts.output, input)
	pages := comp.RenderBlocks()

	for i, page := range pages {
		path := fmt.Sprintf("%s_block_%d.html", base, i+1)
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return err
		}
		printFile(path, false)
	}
	printSuccess("Rendered %d block page(s)", len(pages))
	return nil
}

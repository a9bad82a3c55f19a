package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"

	"html-dsl/internal/dom"
	"html-dsl/internal/extract"
	"html-dsl/internal/logger"
	"html-dsl/internal/models"
	"html-dsl/internal/report"
	"html-dsl/internal/selector"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	tag      string
	raw      string
	id       string
	classes  listFlag
	attrs    listFlag
	recipe   string
	format   string
	value    string
	logLevel string
	files    []string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.StringVar(&opts.tag, "tag", "", "Tag name, e.g. template, slot, content, shadow")
	fs.StringVar(&opts.raw, "raw", "", "Raw selector fragment appended to the tag")
	fs.StringVar(&opts.id, "id", "", "Required element id")
	fs.Var(&opts.classes, "class", "Required class (repeatable)")
	fs.Var(&opts.attrs, "attr", "Required attribute, 'key' or 'key=value' (repeatable)")
	fs.StringVar(&opts.recipe, "recipe", "", "YAML extraction recipe; replaces the selector flags")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json or html")
	fs.StringVar(&opts.value, "value", "", "Print one value per match instead of the match: text, own_text, html, outer_html, attr:<name>, present or count")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	opts.files = fs.Args()
	return opts, nil
}

func (o options) css() selector.CSS {
	css := selector.Tag(o.tag,
		selector.Raw(o.raw),
		selector.WithClass(o.classes...),
		selector.WithID(o.id),
	)
	for _, attr := range o.attrs {
		if key, val, ok := strings.Cut(attr, "="); ok {
			selector.WithAttr(key, val)(&css)
		} else {
			selector.WithAttrKey(key)(&css)
		}
	}
	return css
}

func main() {
	logger.Init()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := logger.SetLevel(opts.logLevel); err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Query failed")
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer(format)
	if err != nil {
		return err
	}

	if opts.recipe != "" {
		return runRecipe(ctx, opts, renderer, stdin, stdout)
	}

	css := opts.css()
	if css.String() == "" {
		return errors.New("a selector flag or -recipe is required")
	}

	doc, err := readDocument(opts.files, stdin)
	if err != nil {
		return err
	}

	return selector.In(doc, css, func(es *dom.Elements) error {
		if opts.value == "" {
			return renderer.Matches(stdout, es.Selector(), extract.Matches(es))
		}
		values, err := extract.Values(es, opts.value)
		if err != nil {
			return err
		}
		return renderer.Values(stdout, es.Selector(), values)
	})
}

func runRecipe(ctx context.Context, opts options, renderer *report.Renderer, stdin io.Reader, stdout io.Writer) error {
	recipe, err := extract.LoadRecipe(opts.recipe)
	if err != nil {
		return err
	}

	extractor := extract.NewExtractor()
	if len(opts.files) > 0 {
		results, err := extract.NewRunner(extractor).RunFiles(ctx, recipe, opts.files)
		if err != nil {
			return err
		}
		return renderer.Results(stdout, results)
	}

	doc, err := dom.Parse(stdin)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}
	result, err := extractor.Extract(doc, recipe)
	if err != nil {
		return err
	}
	result.Source = "stdin"
	return renderer.Results(stdout, []models.Result{result})
}

// readDocument parses the single file argument, or stdin when there is none.
func readDocument(files []string, stdin io.Reader) (*dom.Doc, error) {
	switch len(files) {
	case 0:
		doc, err := dom.Parse(stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		return doc, nil
	case 1:
		f, err := os.Open(files[0])
		if err != nil {
			return nil, fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()

		doc, err := dom.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("selector queries take one document, got %d; use -recipe for batches", len(files))
	}
}

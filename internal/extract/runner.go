package extract

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"html-dsl/internal/dom"
	"html-dsl/internal/logger"
	"html-dsl/internal/models"
)

// Runner applies one recipe to many documents.
type Runner struct {
	extractor *Extractor
	log       zerolog.Logger
}

func NewRunner(extractor *Extractor) *Runner {
	return &Runner{
		extractor: extractor,
		log:       logger.Component("runner"),
	}
}

// RunFiles extracts from every path concurrently. Results keep the order of
// paths; a file that fails carries its error in Result.Error and does not
// stop the others. Files not yet started when ctx is done are skipped.
func (r *Runner) RunFiles(ctx context.Context, recipe Recipe, paths []string) ([]models.Result, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	results := make([]models.Result, len(paths))

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = models.Result{Source: path, Recipe: recipe.Name, Error: err.Error()}
			continue
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			res, err := r.runFile(recipe, path)
			if err != nil {
				r.log.Error().Err(err).Str("file", path).Msg("Extraction failed")
				res = models.Result{Recipe: recipe.Name, Error: err.Error()}
			}
			res.Source = path
			results[i] = res
		}(i, path)
	}

	wg.Wait()
	r.log.Info().Int("file_count", len(paths)).Str("recipe", recipe.Name).Msg("Completed extraction")
	return results, nil
}

func (r *Runner) runFile(recipe Recipe, path string) (models.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Result{}, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return models.Result{}, fmt.Errorf("parsing HTML: %w", err)
	}

	return r.extractor.Extract(doc, recipe)
}

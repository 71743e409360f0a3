package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/search"
)

// ProvideSuggester provides the fuzzy title suggester.
func ProvideSuggester(i do.Injector) (*search.Suggester, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return search.NewSuggester(log), nil
}

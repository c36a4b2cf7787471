package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"clouddictionary/application/services"
	"clouddictionary/domain/core/entities"
	"clouddictionary/infrastructure/config"
	"clouddictionary/infrastructure/di"

	"github.com/spf13/cobra"
)

type definitionService interface {
	GetByWord(ctx context.Context, word string) (*entities.Definition, error)
	Count(ctx context.Context) (int, error)
	Import(ctx context.Context, definitions []*entities.Definition) (*services.ImportResult, error)
}

type definitionOfTheDayService interface {
	Current(ctx context.Context) (*entities.Definition, error)
	Rotate(ctx context.Context) (*entities.Definition, error)
}

// app holds the services the commands run against. They are wired from
// the environment on first use unless already set.
type app struct {
	definitions definitionService
	today       definitionOfTheDayService
	container   *di.Container
	asJSON      bool
}

func (a *app) init(cmd *cobra.Command) error {
	if a.definitions != nil && a.today != nil {
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	container, err := di.InitializeContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("initialize container: %w", err)
	}

	a.container = container
	a.definitions = container.DefinitionService
	a.today = container.DefinitionOfTheDayService
	return nil
}

func (a *app) close() {
	if a.container != nil {
		a.container.Shutdown()
	}
}

func (a *app) printDefinition(w io.Writer, d *entities.Definition) error {
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	fmt.Fprintf(w, "%s (%s)\n", d.Word, d.Tag)
	fmt.Fprintf(w, "  id:      %s\n", d.ID)
	fmt.Fprintf(w, "  content: %s\n", d.Content)
	fmt.Fprintf(w, "  author:  %s <%s>\n", d.Author.Name, d.Author.Link)
	fmt.Fprintf(w, "  more:    %s\n", d.LearnMoreURL)
	if d.Abbreviation != "" {
		fmt.Fprintf(w, "  abbr:    %s\n", d.Abbreviation)
	}
	return nil
}

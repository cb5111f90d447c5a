package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynamicform/pkg/model"
	"github.com/goliatone/go-dynamicform/pkg/widget"
)

// newPromptDriver is swapped in tests.
var newPromptDriver = func() promptDriver { return &surveyDriver{} }

func initCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a widget config interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := askConfig(cmd.Context(), newPromptDriver())
			if err != nil {
				return err
			}

			data, err := widget.MarshalConfig(cfg)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "widget.yaml", "Config file to write, - for stdout")

	return cmd
}

// askConfig walks the user through every widget setting and returns a
// validated config.
func askConfig(ctx context.Context, driver promptDriver) (widget.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := widget.DefaultConfig()

	inputs := []struct {
		target *string
		prompt inputConfig
	}{
		{&cfg.Container, inputConfig{Message: "Container class", Default: "contacts", Help: "Single class token of the wrapper, [A-Za-z0-9_] only", Validator: validContainer}},
		{&cfg.Body, inputConfig{Message: "Body selector", Default: ".container-items", Validator: required}},
		{&cfg.Item, inputConfig{Message: "Item selector", Default: ".item", Validator: required}},
		{&cfg.FormID, inputConfig{Message: "Form id", Default: "dynamic-form", Validator: required}},
		{&cfg.InsertButton, inputConfig{Message: "Insert button selector", Default: ".add-item"}},
		{&cfg.DeleteButton, inputConfig{Message: "Delete button selector", Default: ".remove-item"}},
	}
	for _, in := range inputs {
		answer, err := driver.Input(ctx, in.prompt)
		if err != nil {
			return widget.Config{}, err
		}
		*in.target = strings.TrimSpace(answer)
	}

	positions := []string{widget.InsertBottom, widget.InsertTop}
	idx, err := driver.Select(ctx, selectConfig{Message: "Insert new items at", Options: positions})
	if err != nil {
		return widget.Config{}, err
	}
	if idx < 0 || idx >= len(positions) {
		return widget.Config{}, errors.New("dynamicform: no insert position selected")
	}
	cfg.InsertPosition = positions[idx]

	if cfg.Min, err = askInt(ctx, driver, "Minimum items", widget.DefaultMin); err != nil {
		return widget.Config{}, err
	}
	if cfg.Limit, err = askInt(ctx, driver, "Item limit", widget.DefaultLimit); err != nil {
		return widget.Config{}, err
	}

	fields, err := driver.Input(ctx, inputConfig{Message: "Fields (comma separated)", Help: "Attribute names of one item, e.g. name,email", Validator: required})
	if err != nil {
		return widget.Config{}, err
	}
	cfg.Fields = splitList(fields)

	form, err := driver.Input(ctx, inputConfig{Message: "Form name", Default: "Contact", Help: "Outer key of input names, e.g. Contact[0][email]"})
	if err != nil {
		return widget.Config{}, err
	}
	isNew, err := driver.Confirm(ctx, confirmConfig{Message: "Render as a new record?", Default: true})
	if err != nil {
		return widget.Config{}, err
	}
	cfg.Record = model.NewRecord(form, isNew)

	if err := widget.Validate(cfg); err != nil {
		return widget.Config{}, err
	}
	return cfg, nil
}

func askInt(ctx context.Context, driver promptDriver, message string, def int) (int, error) {
	answer, err := driver.Input(ctx, inputConfig{Message: message, Default: strconv.Itoa(def), Validator: validInt})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("dynamicform: %s: %w", strings.ToLower(message), err)
	}
	return n, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func validInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func validContainer(s string) error {
	cfg := widget.Config{Container: strings.TrimSpace(s)}
	var cfgErr *widget.ConfigError
	if err := widget.Validate(cfg); errors.As(err, &cfgErr) && cfgErr.Field == "widgetContainer" {
		return errors.New(cfgErr.Message)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

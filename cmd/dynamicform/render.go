package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynamicform"
	"github.com/goliatone/go-dynamicform/pkg/widget"
)

func renderCmd() *cobra.Command {
	var (
		configPath string
		markupPath string
		output     string
		title      string
		assetURL   string
		scripts    []string
		sanitize   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a widget over captured markup into an HTML document",
		Long: `Render runs the widget configured in --config over the form body in
--markup and writes a standalone HTML document with the options variable
and the client wiring scripts.`,
		Example: `  dynamicform render --config widget.yaml --markup body.html --output page.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := widget.LoadConfig(configPath)
			if err != nil {
				return err
			}
			markup, err := os.ReadFile(markupPath)
			if err != nil {
				return fmt.Errorf("read markup: %w", err)
			}

			opts := []widget.Option{
				widget.WithScriptFiles(scripts...),
				widget.WithAssetURL(assetURL),
			}
			if sanitize {
				opts = append(opts, widget.WithTemplatePolicy(widget.FormPolicy()))
			}

			frag, err := dynamicform.RenderHTML(cfg, string(markup), opts...)
			if err != nil {
				return err
			}

			views, err := newViews()
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			doc := document{Title: title, Head: frag.Head, Body: frag.HTML, EndBody: frag.EndBody}
			if err := writeDocument(views, &buf, doc); err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Widget config file (YAML)")
	cmd.Flags().StringVarP(&markupPath, "markup", "m", "", "Captured form body (HTML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&title, "title", "Dynamic form", "Document title")
	cmd.Flags().StringVar(&assetURL, "asset-url", widget.DefaultAssetURL, "URL of the dynamicform runtime, empty to skip")
	cmd.Flags().StringSliceVar(&scripts, "script", []string{jQueryURL}, "Script files loaded before the runtime")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Sanitize the item template before sending it to the client")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("markup")

	return cmd
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"worldpulse/internal/desk"
	"worldpulse/internal/models"
	"worldpulse/internal/newsroom"
)

var (
	generateTopic    string
	generateCategory string
	generateProvider string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one article and print it as JSON",
	Long: `Run the draft and image steps once for a topic and print the
assembled article. Nothing is published.`,
	Example: `  worldpulse generate --topic "Grid-scale battery storage" --category Technology`,
	RunE:    runGenerate,
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Fetch the current trending topics and print them as JSON",
	RunE:  runTrends,
}

func init() {
	generateCmd.Flags().StringVar(&generateTopic, "topic", "", "topic to write about (required)")
	generateCmd.Flags().StringVar(&generateCategory, "category", string(models.DefaultCategory),
		"desk: "+categoryList())
	generateCmd.Flags().StringVar(&generateProvider, "provider", "",
		"ai provider for this run (defaults to AI_PROVIDER)")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	topic := strings.TrimSpace(generateTopic)
	if topic == "" {
		return desk.ErrEmptyTopic
	}
	category, ok := models.ParseCategory(generateCategory)
	if !ok {
		return fmt.Errorf("unknown category %q (want one of %s)", generateCategory, categoryList())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context(), cfg, serviceOptions{provider: generateProvider})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GenerationTimeout)
	defer cancel()

	if err := desk.Screen(ctx, svc.registry, topic); err != nil {
		return err
	}

	article, err := svc.pipeline.Generate(ctx, newsroom.Request{Topic: topic, Category: category})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), article)
}

func runTrends(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cmd.Context(), cfg, serviceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	return printJSON(cmd.OutOrStdout(), svc.trends.FetchTrends(cmd.Context()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryList() string {
	cats := models.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

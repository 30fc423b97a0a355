package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-resume/internal/website"
)

var generateWebsiteCmd = &cobra.Command{
	Use:   "generate-website",
	Short: "Generate a static portfolio website from enriched resume data",
	Long: fmt.Sprintf(`Writes index.html, styles.css and script.js for enriched resume data into a directory.
Available themes: %s.`, strings.Join(website.ThemeNames(), ", ")),
	Args: cobra.NoArgs,
	RunE: runGenerateWebsite,
}

var (
	generateWebsiteInput  string
	generateWebsiteOutput string
	generateWebsiteTheme  string
)

func init() {
	generateWebsiteCmd.Flags().StringVarP(&generateWebsiteInput, "in", "i", "", "Path to enriched resume data JSON (required)")
	generateWebsiteCmd.Flags().StringVarP(&generateWebsiteOutput, "out", "o", "", "Output directory (required)")
	generateWebsiteCmd.Flags().StringVarP(&generateWebsiteTheme, "theme", "t", website.ThemeProfessional, "Visual theme")

	_ = generateWebsiteCmd.MarkFlagRequired("in")
	_ = generateWebsiteCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(generateWebsiteCmd)
}

func runGenerateWebsite(cmd *cobra.Command, _ []string) error {
	data, err := readResumeData(generateWebsiteInput)
	if err != nil {
		return err
	}

	site, err := website.Generate(data, generateWebsiteTheme)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(generateWebsiteOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := site.Files()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(generateWebsiteOutput, name)
		if err := os.WriteFile(path, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	logger.Info("generated website", "theme", website.ThemeFor(generateWebsiteTheme).Name, "dir", generateWebsiteOutput)
	return nil
}

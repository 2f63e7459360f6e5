package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	indexOutput string
	indexCSS    string
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Write the posts index",
	Long: `Load every post and write a JSON index of their metadata, newest first.
Use "-" as output to print to stdout.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "posts.json", "Index file, or - for stdout")
	indexCmd.Flags().StringVar(&indexCSS, "css", "", "Also write the code highlighting stylesheet to this file")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	svc, _, err := loadPosts(cmd)
	if err != nil {
		return err
	}

	index, err := svc.Posts.Index(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	if indexOutput == "-" {
		return printJSON(cmd, index)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := writeFile(indexOutput, append(data, '\n')); err != nil {
		return err
	}
	cmd.Printf("Wrote %d posts to %s\n", index.Metadata.TotalPosts, indexOutput)

	if indexCSS != "" {
		if svc.Stylesheet == nil {
			return errors.New("stylesheet not available")
		}
		css, err := svc.Stylesheet()
		if err != nil {
			return fmt.Errorf("failed to render stylesheet: %w", err)
		}
		if err := writeFile(indexCSS, []byte(css)); err != nil {
			return err
		}
		cmd.Printf("Wrote stylesheet to %s\n", indexCSS)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Command dcoregen renders a Go package implementing one DataCore
// archive's schema, via package gen.
package main

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dcoretech/dcore/database"
	"github.com/dcoretech/dcore/gen"
)

func main() {
	rootCmd := &cobra.Command{Use: "dcoregen"}
	rootCmd.AddCommand(generateCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [archive]",
		Short: "render a Go package implementing one archive's schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgName, _ := cmd.Flags().GetString("package")
			outDir, _ := cmd.Flags().GetString("out")
			dispatcher, _ := cmd.Flags().GetString("dispatcher")
			withManifest, _ := cmd.Flags().GetBool("manifest")
			return runGenerate(args[0], outDir, gen.Options{
				PackageName:    pkgName,
				DispatcherName: dispatcher,
				EmitManifest:   withManifest,
			})
		},
	}
	cmd.Flags().String("package", "", "generated package name (required)")
	cmd.Flags().String("out", ".", "output directory")
	cmd.Flags().String("dispatcher", "", "override the generated dispatch function name")
	cmd.Flags().Bool("manifest", false, "also emit manifest.json describing every generated struct and enum")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

// runGenerate reads the archive at archivePath, renders it per opts, and
// writes every resulting file (plus manifest.json, if opts requested
// one) under outDir.
func runGenerate(archivePath, outDir string, opts gen.Options) error {
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return err
	}
	db, err := database.Parse(data)
	if err != nil {
		return err
	}

	result, err := gen.Generate(db, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for _, f := range result.Files {
		if err := os.WriteFile(filepath.Join(outDir, f.Path), f.Contents, 0o644); err != nil {
			return err
		}
	}
	if result.Manifest != nil {
		manifestBytes, err := json.MarshalIndent(result.Manifest, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, "manifest.json"), manifestBytes, 0o644); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/serge22/media-accordion/internal/catalog"
	"github.com/serge22/media-accordion/internal/service"
)

var (
	dbDirFlag string
	store     *catalog.Catalog
	svc       *service.Service
)

func cliLogger(msg string) {
	log.Printf("[accordion-cli] %s", msg)
}

// NewRootCmd creates the root command for the CLI application. It takes
// a function responsible for initializing the service and catalog, so
// tests can inject test-specific instances.
func NewRootCmd(getService func(dbDir string, logger catalog.LoggerFunc) (*service.Service, *catalog.Catalog, error)) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "accordion-cli",
		Short: "Media Accordion CLI - manage presentation documents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			svc, store, err = getService(dbDirFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to initialize service and catalog: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbDirFlag, "db", "", "Directory holding the presentation catalog (default: user config dir)")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a presentation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := svc.ValidateFile(args[0])
			if err != nil {
				return err
			}
			items := 0
			for _, c := range doc.Containers {
				items += len(c.Items)
			}
			cmd.Printf("OK: %d container(s), %d item(s)\n", len(doc.Containers), items)
			return nil
		},
	}
	rootCmd.AddCommand(validateCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show size, dimensions, and EXIF metadata for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := service.Inspect(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", args[0])
			cmd.Printf("  title: %s\n", service.TitleFor(args[0]))
			cmd.Printf("  size: %d bytes, modified %s\n", info.Size, info.ModTime.Format("2006-01-02 15:04"))
			if info.Width > 0 && info.Height > 0 {
				cmd.Printf("  dimensions: %dx%d\n", info.Width, info.Height)
			}
			keys := make([]string, 0, len(info.EXIFData))
			for k := range info.EXIFData {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				cmd.Printf("  %s: %s\n", k, info.EXIFData[k])
			}
			return nil
		},
	}
	rootCmd.AddCommand(inspectCmd)

	var importName string
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a presentation file into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := svc.Import(importName, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Imported %q\n", name)
			return nil
		},
	}
	importCmd.Flags().StringVar(&importName, "name", "", "Catalog name (default: file name without extension)")
	rootCmd.AddCommand(importCmd)

	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export a stored presentation back to YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := svc.Export(args[0], exportOut)
			if err != nil {
				return err
			}
			cmd.Printf("Exported %q to %s\n", args[0], path)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: <name>.yaml)")
	rootCmd.AddCommand(exportCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored presentations",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := svc.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println("No presentations in the catalog.")
				return nil
			}
			for _, e := range entries {
				cmd.Printf("%s  %d container(s), %d item(s), saved %s\n",
					e.Name, e.Containers, e.Items, e.SavedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := svc.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted %q\n", args[0])
			return nil
		},
	}
	rootCmd.AddCommand(deleteCmd)

	var genOpts service.GenerateOptions
	var genOut string
	var genSave string
	generateCmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate a presentation from a directory of media files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			doc, err := svc.Generate(dir, genOpts)
			if err != nil {
				return err
			}
			if genSave != "" {
				if err := store.Save(genSave, doc); err != nil {
					return err
				}
				cmd.Printf("Saved generated presentation as %q\n", genSave)
				return nil
			}
			data, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			if genOut == "" {
				cmd.Print(string(data))
				return nil
			}
			if err := os.WriteFile(genOut, data, 0o644); err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", genOut)
			return nil
		},
	}
	generateCmd.Flags().StringVar(&genOpts.ContainerID, "id", "", "Container id (default: directory name)")
	generateCmd.Flags().StringVar(&genOpts.Layout, "layout", "", "Container layout: standard or hover")
	generateCmd.Flags().IntVar(&genOpts.DurationMS, "duration-ms", 0, "Per-item duration in milliseconds (default: runtime default)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the YAML to a file instead of stdout")
	generateCmd.Flags().StringVar(&genSave, "save", "", "Save the generated presentation into the catalog under this name")
	rootCmd.AddCommand(generateCmd)

	return rootCmd
}

func defaultGetService(dbDir string, logger catalog.LoggerFunc) (*service.Service, *catalog.Catalog, error) {
	store, err := catalog.NewCatalog(dbDir, logger)
	if err != nil {
		return nil, nil, err
	}
	return service.NewService(store, func(msg string) { logger(msg) }), store, nil
}

func main() {
	rootCmd := NewRootCmd(defaultGetService)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

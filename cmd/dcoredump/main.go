// Command dcoredump walks every main record in a DataCore archive and
// writes its JSON facade (spec-defined null/external-ref/circular-ref
// contract, see package jsonfacade) to stdout or one file per record
// under a directory. It resolves records through the generated/demo
// schema compiled in: a real deployment would swap in whatever package
// dcoregen produced for its own archive's schema instead.
package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dcoretech/dcore/generated/demo"
	"github.com/dcoretech/dcore/jsonfacade"
	"github.com/dcoretech/dcore/runtime"
)

func main() {
	rootCmd := &cobra.Command{Use: "dcoredump"}
	rootCmd.AddCommand(dumpCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [archive]",
		Short: "walk every main record and write its JSON facade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir, _ := cmd.Flags().GetString("out")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rt, err := demo.NewRuntime(data)
			if err != nil {
				return err
			}
			return dumpAll(rt, outDir, concurrency)
		},
	}
	cmd.Flags().String("out", "", "directory to write one JSON file per record; empty writes to stdout")
	cmd.Flags().Int("concurrency", 4, "number of records resolved concurrently")
	return cmd
}

// dumpAll resolves every main record concurrently, bounded by
// concurrency, and either writes one file per record under outDir or
// serialises writes to stdout under stdoutMu.
func dumpAll(rt *runtime.Runtime, outDir string, concurrency int) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(concurrency)

	var stdoutMu sync.Mutex
	count := rt.Database().MainRecordCount()
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			mainRec, err := rt.Database().GetRecordByIndex(i)
			if err != nil {
				return err
			}
			rec, err := rt.GetFromMainRecord(mainRec)
			if err != nil {
				return err
			}
			out, err := jsonfacade.MarshalRecord(rt, rec)
			if err != nil {
				return err
			}

			if outDir == "" {
				stdoutMu.Lock()
				defer stdoutMu.Unlock()
				_, err := os.Stdout.Write(append(out, '\n'))
				return err
			}
			path := filepath.Join(outDir, rec.ID.String()+".json")
			return os.WriteFile(path, out, 0o644)
		})
	}
	return g.Wait()
}

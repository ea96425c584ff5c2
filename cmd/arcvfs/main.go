/*
 * MIT License
 *
 * Copyright (c) 2024 The arcvfs Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Command arcvfs is a small diagnostic CLI over the library: ls, cat,
// and stat exercise ListEntries, ReadFile, and GetEntryInfo against a
// base path that may be a plain directory or any archive the library
// recognizes, nested or not.
package main

import (
	"fmt"
	"os"

	"github.com/nabbar/arcvfs"
	"github.com/nabbar/arcvfs/config"
	"github.com/nabbar/arcvfs/entry"
	"github.com/nabbar/arcvfs/internal/tempstore"
	"github.com/nabbar/arcvfs/internal/vlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootFlags struct {
	maxDepth int
	tempRoot string
	verbose  bool
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCommand = &cobra.Command{
	Use:   "arcvfs",
	Short: "Browse a directory tree and any archives nested inside it as one flat address space",
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.IntVar(&rootFlags.maxDepth, config.KeyMaxDepth, 0, "maximum nested-archive depth (0 uses the library default)")
	flags.StringVar(&rootFlags.tempRoot, config.KeyTempRoot, "", "directory nested archives spill to when random access is required")
	flags.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log materialization progress to stderr")

	rootCommand.AddCommand(lsCommand, catCommand, statCommand)
}

// openManager loads tunables via viper (honoring the persistent flags
// and ARCVFS_-prefixed environment variables) and sets the base path,
// returning a Manager ready for querying.
func openManager(basePath string) (*arcvfs.Manager, error) {
	v := viper.New()
	if rootFlags.maxDepth > 0 {
		v.Set(config.KeyMaxDepth, rootFlags.maxDepth)
	}
	if rootFlags.tempRoot != "" {
		v.Set(config.KeyTempRoot, rootFlags.tempRoot)
	}

	tn, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if tn.TempRoot != "" {
		tempstore.Root = tn.TempRoot
	}

	opts := []arcvfs.Option{arcvfs.WithMaxDepth(tn.MaxDepth)}
	if rootFlags.verbose {
		opts = append(opts, arcvfs.WithLogger(vlog.New(os.Stderr, logrus.DebugLevel)))
	}

	m := arcvfs.New(opts...)
	if err := m.SetBasePath(basePath); err != nil {
		return nil, err
	}
	return m, nil
}

var lsCommand = &cobra.Command{
	Use:   "ls <base-path> [relative-path]",
	Short: "List the direct children of a relative path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel := ""
		if len(args) == 2 {
			rel = args[1]
		}

		m, err := openManager(args[0])
		if err != nil {
			return err
		}
		defer m.Close()

		children, err := m.ListEntries(rel)
		if err != nil {
			return err
		}
		printTable(children)
		return nil
	},
}

var catCommand = &cobra.Command{
	Use:   "cat <base-path> <relative-path>",
	Short: "Print the full contents of a file to stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openManager(args[0])
		if err != nil {
			return err
		}
		defer m.Close()

		data, err := m.ReadFile(args[1])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var statCommand = &cobra.Command{
	Use:   "stat <base-path> <relative-path>",
	Short: "Print one entry's metadata",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openManager(args[0])
		if err != nil {
			return err
		}
		defer m.Close()

		e, err := m.GetEntryInfo(args[1])
		if err != nil {
			return err
		}
		printEntry(e)
		return nil
	},
}

// printTable renders entries as plain whitespace-aligned columns. No
// third-party table-rendering library in the corpus covers this
// concern (see DESIGN.md), so this stays on the standard library.
func printTable(entries []*entry.Info) {
	w := 0
	for _, e := range entries {
		if len(e.Name) > w {
			w = len(e.Name)
		}
	}
	for _, e := range entries {
		status := ""
		if e.Status == entry.Broken {
			status = " (broken)"
		}
		fmt.Printf("%-*s  %-9s  %10d%s\n", w, e.Name, e.Type.String(), e.Size, status)
	}
}

func printEntry(e *entry.Info) {
	fmt.Printf("name:            %s\n", e.Name)
	fmt.Printf("relative_path:   %s\n", e.RelativePath)
	fmt.Printf("name_in_archive: %s\n", e.NameInArchive)
	fmt.Printf("type:            %s\n", e.Type)
	fmt.Printf("status:          %s\n", e.Status)
	fmt.Printf("size:            %d\n", e.Size)
	if e.Hidden {
		fmt.Println("hidden:          true")
	}
	if e.BrokenReason != "" {
		fmt.Printf("broken_reason:   %s\n", e.BrokenReason)
	}
}

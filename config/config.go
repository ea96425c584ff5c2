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

// Package config loads arcvfs's optional runtime tunables through
// viper: worker-pool size for the filesystem handler's wide-directory
// fan-out, maximum nested-archive depth, and the temp directory root
// nested archives spill to. Every field has a safe default, mirroring
// the teacher's component-registration convention of setting defaults
// before binding flags or environment overrides.
package config

import (
	"os"

	"github.com/nabbar/arcvfs/handler/fsys"
	"github.com/nabbar/arcvfs/processor"
	"github.com/spf13/viper"
)


// Keys are the viper keys Tunables binds, exported so cmd/arcvfs can
// wire cobra flags to the same names.
const (
	KeyWorkers   = "workers"
	KeyMaxDepth  = "max_depth"
	KeyTempRoot  = "temp_root"
	KeyWideLimit = "wide_dir_threshold"
)

// Tunables holds every optional runtime override arcvfs exposes.
type Tunables struct {
	Workers           int
	MaxDepth          int
	TempRoot          string
	WideDirThreshold  int
}

// Defaults returns a Tunables populated with the library's built-in
// defaults, the same values used when no configuration is supplied.
func Defaults() Tunables {
	return Tunables{
		Workers:          0, // 0 means fsys picks min(NumCPU, fsys.MaxWorkers)
		MaxDepth:         processor.DefaultMaxDepth,
		TempRoot:         os.TempDir(),
		WideDirThreshold: fsys.WideDirThreshold,
	}
}

// Load builds a viper instance seeded with Defaults(), then merges in
// environment variables prefixed ARCVFS_ and any values already set on
// v by a caller (e.g. cmd/arcvfs binding cobra flags before calling
// Load). Returns the resolved Tunables.
func Load(v *viper.Viper) (Tunables, error) {
	if v == nil {
		v = viper.New()
	}

	def := Defaults()
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyMaxDepth, def.MaxDepth)
	v.SetDefault(KeyTempRoot, def.TempRoot)
	v.SetDefault(KeyWideLimit, def.WideDirThreshold)

	v.SetEnvPrefix("ARCVFS")
	v.AutomaticEnv()

	root := v.GetString(KeyTempRoot)
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		return Tunables{}, ErrorLoad.Error(err)
	}

	return Tunables{
		Workers:          v.GetInt(KeyWorkers),
		MaxDepth:         v.GetInt(KeyMaxDepth),
		TempRoot:         root,
		WideDirThreshold: v.GetInt(KeyWideLimit),
	}, nil
}

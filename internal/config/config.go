// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings of a documentation run.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyDocsDir = "docs.dir"
	KeyMkDocs  = "docs.mkdocs"
	KeySources = "sources"

	KeyDefaultNamespace = "ontology.default_namespace"
	KeyInferPrefixes    = "ontology.infer_prefixes"

	KeyRender        = "diagram.render"
	KeyFormats       = "diagram.formats"
	KeyDotBinary     = "diagram.dot_binary"
	KeyRankdir       = "diagram.rankdir"
	KeyIgnoreClasses = "diagram.ignore_classes"

	KeyRegistryBackend = "registry.backend"
	KeyRegistryPath    = "registry.path"

	KeyMetricsTextfile = "metrics.textfile"
	KeyDebounce        = "watch.debounce"
)

// Registry backends.
const (
	RegistryMarkdown = "markdown"
	RegistryLevelDB  = "leveldb"
	RegistryNone     = "none"
)

// EnvPrefix is the prefix of environment variables overriding keys, e.g.
// OWLDOC_DOCS_DIR.
const EnvPrefix = "owldoc"

// Config defines one documentation run.
type Config struct {
	// DocsDir is the MkDocs docs directory. Ontology sources live in it and
	// pages are written below it.
	DocsDir string `validate:"required"`
	MkDocs  string `validate:"required"`
	// Sources are doublestar patterns relative to DocsDir.
	Sources []string `validate:"required,min=1,dive,required"`

	DefaultNamespace string `validate:"omitempty,uri"`
	InferPrefixes    bool

	Render        bool
	Formats       []string `validate:"dive,oneof=svg png pdf jpg gif"`
	DotBinary     string   `validate:"required_if=Render true"`
	Rankdir       string   `validate:"oneof=TB BT LR RL"`
	IgnoreClasses []string

	RegistryBackend string `validate:"oneof=markdown leveldb none"`
	RegistryPath    string `validate:"required_unless=RegistryBackend none"`

	MetricsTextfile string
	Debounce        time.Duration `validate:"min=0"`
}

var validate = validator.New()

// SetDefaults installs the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDocsDir, "docs")
	v.SetDefault(KeyMkDocs, "mkdocs.yml")
	v.SetDefault(KeySources, []string{"*.ofn", "*.owl", "*.ttl", "*.rdf"})
	v.SetDefault(KeyDefaultNamespace, "")
	v.SetDefault(KeyInferPrefixes, false)
	v.SetDefault(KeyRender, true)
	v.SetDefault(KeyFormats, []string{"svg", "png"})
	v.SetDefault(KeyDotBinary, "dot")
	v.SetDefault(KeyRankdir, "TB")
	v.SetDefault(KeyIgnoreClasses, []string{})
	v.SetDefault(KeyRegistryBackend, RegistryMarkdown)
	v.SetDefault(KeyRegistryPath, "concept_registry.md")
	v.SetDefault(KeyMetricsTextfile, "")
	v.SetDefault(KeyDebounce, 500*time.Millisecond)
}

// Init prepares v: defaults, environment overrides and the optional
// config file.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %q: %w", file, err)
	}
	return nil
}

// FromViper resolves and validates the run configuration.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		DocsDir:          v.GetString(KeyDocsDir),
		MkDocs:           v.GetString(KeyMkDocs),
		Sources:          v.GetStringSlice(KeySources),
		DefaultNamespace: v.GetString(KeyDefaultNamespace),
		InferPrefixes:    v.GetBool(KeyInferPrefixes),
		Render:           v.GetBool(KeyRender),
		Formats:          v.GetStringSlice(KeyFormats),
		DotBinary:        v.GetString(KeyDotBinary),
		Rankdir:          strings.ToUpper(v.GetString(KeyRankdir)),
		IgnoreClasses:    v.GetStringSlice(KeyIgnoreClasses),
		RegistryBackend:  strings.ToLower(v.GetString(KeyRegistryBackend)),
		RegistryPath:     v.GetString(KeyRegistryPath),
		MetricsTextfile:  v.GetString(KeyMetricsTextfile),
		Debounce:         v.GetDuration(KeyDebounce),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the struct constraints and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q (%s)", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Path resolves a docs-relative path.
func (c *Config) Path(elem ...string) string {
	return filepath.Join(append([]string{c.DocsDir}, elem...)...)
}

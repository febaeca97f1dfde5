// Copyright 2025 Jason Poonia
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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Source struct {
			URL string `hcl:"url"`
		} `hcl:"source,block"`
		Destination struct {
			URL         string `hcl:"url"`
			Username    string `hcl:"username,optional"`
			AppPassword string `hcl:"app_password,optional"`
		} `hcl:"destination,block"`
		Migrate *struct {
			RewriteLinks bool     `hcl:"rewrite_links,optional"`
			Exclude      []string `hcl:"exclude,optional"`
			Include      []string `hcl:"include,optional"`
			ItemDelay    string   `hcl:"item_delay,optional"`
			PageDelay    string   `hcl:"page_delay,optional"`
			Replacements []struct {
				Old string `hcl:"old"`
				New string `hcl:"new"`
			} `hcl:"replacement,block"`
		} `hcl:"migrate,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Source: Site{
			URL: hclCfg.Source.URL,
		},
		Destination: Destination{
			URL:         hclCfg.Destination.URL,
			Username:    hclCfg.Destination.Username,
			AppPassword: hclCfg.Destination.AppPassword,
		},
	}

	if hclCfg.Migrate != nil {
		cfg.Migrate = &MigrateArgs{
			RewriteLinks: hclCfg.Migrate.RewriteLinks,
			Exclude:      hclCfg.Migrate.Exclude,
			Include:      hclCfg.Migrate.Include,
			ItemDelay:    hclCfg.Migrate.ItemDelay,
			PageDelay:    hclCfg.Migrate.PageDelay,
		}
		for _, r := range hclCfg.Migrate.Replacements {
			cfg.Migrate.Replacements = append(cfg.Migrate.Replacements, Replacement{
				Old: r.Old,
				New: r.New,
			})
		}
	}

	return cfg, nil
}

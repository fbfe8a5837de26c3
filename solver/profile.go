package solver

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Tree profiles describe the betting abstraction as data: which bet
// fractions and raise caps a tree builder should expand per street.
// The solver itself is agnostic to them; they parameterize whatever
// game implements State.

// TreeProfileFile is the top-level HCL document.
type TreeProfileFile struct {
	Profiles []TreeProfile `hcl:"profile,block"`
}

// TreeProfile is one named abstraction table.
type TreeProfile struct {
	Name    string          `hcl:"name,label"`
	Streets []StreetProfile `hcl:"street,block"`
}

// StreetProfile configures one street's action expansion.
type StreetProfile struct {
	Name         string    `hcl:"name,label"`
	BetFractions []float64 `hcl:"bet_fractions"`
	MaxRaises    int       `hcl:"max_raises,optional"`
}

// LoadTreeProfiles parses tree profiles from an HCL file.
func LoadTreeProfiles(path string) (*TreeProfileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTreeProfiles(path, data)
}

// ParseTreeProfiles parses tree profiles from HCL source.
func ParseTreeProfiles(filename string, src []byte) (*TreeProfileFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var out TreeProfileFile
	if diags := gohcl.DecodeBody(file.Body, nil, &out); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	for _, p := range out.Profiles {
		for _, st := range p.Streets {
			for _, f := range st.BetFractions {
				if f <= 0 {
					return nil, fmt.Errorf("profile %q street %q: bet fraction %v must be positive", p.Name, st.Name, f)
				}
			}
		}
	}
	return &out, nil
}

// Profile returns the named profile, if present.
func (f *TreeProfileFile) Profile(name string) (*TreeProfile, bool) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], true
		}
	}
	return nil, false
}

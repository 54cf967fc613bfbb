package source

import (
	"context"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dirx/pkg/errors"
	"github.com/arthur-debert/dirx/pkg/tree"
)

// Fixture is an in-memory source. Paths are relative to the root and use
// "/"; a trailing "/" declares an empty directory.
//
//	root: demo
//	files:
//	  src/main.go: |
//	    package main
//	  build/: ""
type Fixture struct {
	Root  string            `yaml:"root"`
	Files map[string]string `yaml:"files"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid fixture")
	}
	if f.Root == "" {
		f.Root = "root"
	}
	return &f, nil
}

// Tree builds the fixture tree. Paths are added in sorted order.
func (f *Fixture) Tree(ctx context.Context) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(f.Files)+1)
	paths = append(paths, f.Root+"/")
	for p := range f.Files {
		paths = append(paths, f.Root+"/"+strings.TrimPrefix(p, "/"))
	}
	sort.Strings(paths[1:])
	return tree.FromPaths(paths...)
}

// ReadText returns the text of a fixture file; refs are "<root>/<path>".
func (f *Fixture) ReadText(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := strings.TrimPrefix(ref, f.Root+"/")
	text, ok := f.Files[rel]
	if !ok || strings.HasSuffix(rel, "/") {
		return "", errors.Newf(errors.ErrSourceRead, "no fixture file %q", ref)
	}
	return text, nil
}

package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/epicroadmap/pkg/errors"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// WriteTree encodes t as indented JSON to w. A nil tree is written as an
// empty tree.
func WriteTree(t *tree.Tree, w io.Writer) error {
	if t == nil {
		t = tree.New()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return nil
}

// ExportTree writes t to a JSON file at path.
func ExportTree(t *tree.Tree, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := WriteTree(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTree decodes a tree written by [WriteTree]. Missing maps are
// replaced by empty ones.
func ReadTree(r io.Reader) (*tree.Tree, error) {
	var t tree.Tree
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	if t.ParentToChildren == nil {
		t.ParentToChildren = map[tree.ID][]tree.ID{}
	}
	if t.ChildToParent == nil {
		t.ChildToParent = map[tree.ID]tree.ID{}
	}
	return &t, nil
}

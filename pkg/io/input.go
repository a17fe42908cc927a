package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/epicroadmap/pkg/errors"
	"github.com/matzehuels/epicroadmap/pkg/roadmap"
)

// ReadInput decodes a roadmap input document from r and validates it.
//
// Decode failures are reported as [errors.ErrCodeInvalidFormat]; inputs
// with impossible identifiers as [errors.ErrCodeInvalidInput]. ReadInput
// does not close r.
func ReadInput(r io.Reader) (roadmap.Input, error) {
	var in roadmap.Input
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return roadmap.Input{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode input")
	}
	if err := in.Validate(); err != nil {
		return roadmap.Input{}, err
	}
	return in, nil
}

// ImportInput reads the input document at path.
func ImportInput(path string) (roadmap.Input, error) {
	if err := errors.ValidatePath(path); err != nil {
		return roadmap.Input{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return roadmap.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return roadmap.Input{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadInput(f)
}

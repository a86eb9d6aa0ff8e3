package wire

import (
	"bytes"

	"github.com/tidwall/resp"
)

// The Parse* functions are the read-side counterpart to this package's
// reply builders: they turn a RESP reply back into a Go value for callers
// (the embeddable API, scripts, tests) that already have the raw bytes
// rather than a live connection to read from.

func ParseString(b []byte) (string, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func ParseInteger(b []byte) (int, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return 0, err
	}
	return v.Integer(), nil
}

func ParseBoolean(b []byte) (bool, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func ParseStringArray(b []byte) ([]string, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []string{}, nil
	}
	arr := make([]string, len(v.Array()))
	for i, e := range v.Array() {
		arr[i] = e.String()
	}
	return arr, nil
}

func ParseIntegerArray(b []byte) ([]int, error) {
	v, _, err := resp.NewReader(bytes.NewReader(b)).ReadValue()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return []int{}, nil
	}
	arr := make([]int, len(v.Array()))
	for i, e := range v.Array() {
		arr[i] = e.Integer()
	}
	return arr, nil
}

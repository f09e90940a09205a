// Copyright © 2025 The Procwatch Project.

package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Read loads every entry of the log. A missing, empty, or malformed log is ErrUnavailable.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	defer f.Close()

	return decode(path, f)
}

// decode parses a log's header and rows.
func decode(path string, r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, unavailable(path, errors.New("missing header"))
	} else if err != nil {
		return nil, unavailable(path, err)
	}
	if !slices.Equal(head, Header) {
		return nil, unavailable(path, fmt.Errorf("unexpected header %q", strings.Join(head, ",")))
	}

	var es []Entry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, unavailable(path, err)
		}
		e, err := parse(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, unavailable(path, fmt.Errorf("line %d: %w", line, err))
		}
		es = append(es, e)
	}

	return es, nil
}

// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package wordlist reads the candidate subdomain labels to brute-force.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when a wordlist has no usable entries.
var ErrEmpty = errors.New("wordlist is empty")

// Load reads the wordlist from the file at path; see [Read].
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open wordlist: %w", err)
	}
	defer f.Close()
	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("wordlist %s: %w", path, err)
	}
	return words, nil
}

// Read returns the entries of a wordlist, one per line, in order. Lines are
// trimmed; empty lines and lines starting with "#" are skipped. Read returns
// an error wrapping [ErrEmpty] if no entries remain.
func Read(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read wordlist: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

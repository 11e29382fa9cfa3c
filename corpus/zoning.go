// Package corpus reads and writes the datasets used to
// train and evaluate zoning classifiers.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/essentials"
)

// A Sample is a labeled observation sequence.
type Sample struct {
	Class string
	Obs   []hmm.Obs
}

// ReadZoning parses the zoning text format.
//
// Each line holds a class name followed by the integer
// symbols of one sequence, separated by whitespace.
// Blank lines are skipped.
func ReadZoning(r io.Reader) (samples []Sample, err error) {
	defer essentials.AddCtxTo("read zoning", &err)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		} else if len(fields) == 1 {
			return nil, fmt.Errorf("line %d: no symbols for class %q", lineNum, fields[0])
		}
		sample := Sample{Class: fields[0], Obs: make([]hmm.Obs, len(fields)-1)}
		for i, field := range fields[1:] {
			symbol, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad symbol %q", lineNum, field)
			}
			sample.Obs[i] = symbol
		}
		samples = append(samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// WriteZoning writes samples in the format read by
// ReadZoning.
func WriteZoning(w io.Writer, samples []Sample) (err error) {
	defer essentials.AddCtxTo("write zoning", &err)
	bw := bufio.NewWriter(w)
	for _, sample := range samples {
		if strings.ContainsAny(sample.Class, " \t\n") || sample.Class == "" {
			return fmt.Errorf("invalid class name %q", sample.Class)
		}
		bw.WriteString(sample.Class)
		for _, o := range sample.Obs {
			bw.WriteByte(' ')
			fmt.Fprint(bw, o)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Group collects the sequences of every class, keeping
// the input order within each class.
func Group(samples []Sample) map[string][][]hmm.Obs {
	res := map[string][][]hmm.Obs{}
	for _, sample := range samples {
		res[sample.Class] = append(res[sample.Class], sample.Obs)
	}
	return res
}

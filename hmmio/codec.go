package hmmio

import (
	"encoding/json"
	"io"
	"sort"

	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/essentials"
	"gopkg.in/yaml.v3"
)

// WriteJSON encodes m as an indented JSON Document.
func WriteJSON(w io.Writer, m *hmm.Model) (err error) {
	defer essentials.AddCtxTo("write JSON model", &err)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromModel(m))
}

// ReadJSON decodes a Model written by WriteJSON.
//
// Integral numeric labels decode as int.
func ReadJSON(r io.Reader) (m *hmm.Model, err error) {
	defer essentials.AddCtxTo("read JSON model", &err)
	var doc Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Model()
}

// WriteYAML encodes m as a YAML Document.
func WriteYAML(w io.Writer, m *hmm.Model) (err error) {
	defer essentials.AddCtxTo("write YAML model", &err)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromModel(m)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML decodes a Model written by WriteYAML.
func ReadYAML(r io.Reader) (m *hmm.Model, err error) {
	defer essentials.AddCtxTo("read YAML model", &err)
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Model()
}

type setEntry struct {
	Class string    `json:"class"`
	Model *Document `json:"model"`
}

// SaveSet writes one Model per class as a JSON array.
// Classes are written in sorted order.
func SaveSet(w io.Writer, models map[string]*hmm.Model) (err error) {
	defer essentials.AddCtxTo("save model set", &err)
	classes := make([]string, 0, len(models))
	for class := range models {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	entries := make([]setEntry, len(classes))
	for i, class := range classes {
		entries[i] = setEntry{Class: class, Model: FromModel(models[class])}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// LoadSet reads a set of models written by SaveSet.
func LoadSet(r io.Reader) (models map[string]*hmm.Model, err error) {
	defer essentials.AddCtxTo("load model set", &err)
	var entries []setEntry
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	models = make(map[string]*hmm.Model, len(entries))
	for _, entry := range entries {
		if entry.Model == nil {
			continue
		}
		m, err := entry.Model.Model()
		if err != nil {
			return nil, err
		}
		models[entry.Class] = m
	}
	return models, nil
}

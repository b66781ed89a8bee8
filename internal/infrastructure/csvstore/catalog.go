package csvstore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"prdash/internal/domain/dataset"
)

type catalogFile struct {
	Default      string `yaml:"default"`
	DefaultLabel string `yaml:"default_label"`
	Datasets     []struct {
		Source string   `yaml:"source"`
		Label  string   `yaml:"label"`
		Repos  []string `yaml:"repos"`
	} `yaml:"datasets"`
}

// LoadCatalog reads the dataset configuration YAML mapping repository names
// onto source buckets.
func LoadCatalog(path string) (*dataset.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read datasets file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(raw, &cf); err != nil {
		return nil, fmt.Errorf("parse datasets file %s: %w", path, err)
	}
	if len(cf.Datasets) == 0 && cf.Default == "" {
		return nil, fmt.Errorf("datasets file %s configures no datasets", path)
	}

	defs := make([]dataset.Definition, 0, len(cf.Datasets))
	for _, d := range cf.Datasets {
		if d.Source == "" {
			return nil, fmt.Errorf("datasets file %s: dataset with empty source", path)
		}
		defs = append(defs, dataset.Definition{
			Source: dataset.Source(d.Source),
			Label:  d.Label,
			Repos:  d.Repos,
		})
	}
	return dataset.NewCatalog(defs, dataset.Source(cf.Default), cf.DefaultLabel), nil
}

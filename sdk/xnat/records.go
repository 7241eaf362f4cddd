// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package xnat

import "fmt"

type Project struct {
	ID          string `json:"ID"                     yaml:"ID"`
	SecondaryID string `json:"secondary_ID,omitempty" yaml:"secondary_ID,omitempty"`
	Name        string `json:"name,omitempty"         yaml:"name,omitempty"`
	Description string `json:"description,omitempty"  yaml:"description,omitempty"`
	PI          string `json:"pi,omitempty"           yaml:"pi,omitempty"`
	URI         string `json:"URI,omitempty"          yaml:"URI,omitempty"`
}

type Subject struct {
	ID      string `json:"ID"                yaml:"ID"`
	Label   string `json:"label,omitempty"   yaml:"label,omitempty"`
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	URI     string `json:"URI,omitempty"     yaml:"URI,omitempty"`
}

type Experiment struct {
	ID      string `json:"ID"                yaml:"ID"`
	Label   string `json:"label,omitempty"   yaml:"label,omitempty"`
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Date    string `json:"date,omitempty"    yaml:"date,omitempty"`
	XSIType string `json:"xsiType,omitempty" yaml:"xsiType,omitempty"`
	URI     string `json:"URI,omitempty"     yaml:"URI,omitempty"`
}

type Scan struct {
	ID                string `json:"ID"                           yaml:"ID"`
	Type              string `json:"type,omitempty"               yaml:"type,omitempty"`
	Quality           string `json:"quality,omitempty"            yaml:"quality,omitempty"`
	SeriesDescription string `json:"series_description,omitempty" yaml:"series_description,omitempty"`
	XSIType           string `json:"xsiType,omitempty"            yaml:"xsiType,omitempty"`
	URI               string `json:"URI,omitempty"                yaml:"URI,omitempty"`
}

type File struct {
	Name       string `json:"Name"                 yaml:"Name"`
	Size       int64  `json:"Size"                 yaml:"Size"`
	URI        string `json:"URI,omitempty"        yaml:"URI,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
	Format     string `json:"file_format,omitempty" yaml:"file_format,omitempty"`
}

func (r Row) require(level Level, attr string) error {
	if !r.Has(attr) {
		return fmt.Errorf("%s row without %q attribute", level, attr)
	}
	return nil
}

func (r Row) AsProject() (Project, error) {
	if err := r.require(Projects, "ID"); err != nil {
		return Project{}, err
	}
	pi := r.String("pi_firstname")
	if last := r.String("pi_lastname"); last != "" {
		if pi != "" {
			pi += " "
		}
		pi += last
	}
	return Project{
		ID:          r.String("ID"),
		SecondaryID: r.String("secondary_ID"),
		Name:        r.String("name"),
		Description: r.String("description"),
		PI:          pi,
		URI:         r.String("URI"),
	}, nil
}

func (r Row) AsSubject() (Subject, error) {
	if err := r.require(Subjects, "ID"); err != nil {
		return Subject{}, err
	}
	return Subject{
		ID:      r.String("ID"),
		Label:   r.String("label"),
		Project: r.String("project"),
		URI:     r.String("URI"),
	}, nil
}

func (r Row) AsExperiment() (Experiment, error) {
	if err := r.require(Experiments, "ID"); err != nil {
		return Experiment{}, err
	}
	return Experiment{
		ID:      r.String("ID"),
		Label:   r.String("label"),
		Project: r.String("project"),
		Date:    r.String("date"),
		XSIType: r.String("xsiType"),
		URI:     r.String("URI"),
	}, nil
}

func (r Row) AsScan() (Scan, error) {
	if err := r.require(Scans, "ID"); err != nil {
		return Scan{}, err
	}
	return Scan{
		ID:                r.String("ID"),
		Type:              r.String("type"),
		Quality:           r.String("quality"),
		SeriesDescription: r.String("series_description"),
		XSIType:           r.String("xsiType"),
		URI:               r.String("URI"),
	}, nil
}

// AsFile needs Name; a missing or non-numeric Size becomes -1.
func (r Row) AsFile() (File, error) {
	if err := r.require(Files, "Name"); err != nil {
		return File{}, err
	}
	size, ok := r.Int64("Size")
	if !ok {
		size = -1
	}
	return File{
		Name:       r.String("Name"),
		Size:       size,
		URI:        r.String("URI"),
		Collection: r.String("collection"),
		Format:     r.String("file_format"),
	}, nil
}

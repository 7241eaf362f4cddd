// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package xnat

// Level of the XNAT hierarchy, named after its REST path segment.
type Level string

const (
	Projects    Level = "projects"
	Subjects    Level = "subjects"
	Experiments Level = "experiments"
	Scans       Level = "scans"
	Resources   Level = "resources"
	Files       Level = "files"
)

// Hierarchy in root-to-leaf order.
var Hierarchy = []Level{Projects, Subjects, Experiments, Scans, Resources, Files}

// Attributes returned by XNAT for each level.
var Attributes = map[Level][]string{
	Projects: {
		"ID", "secondary_ID", "name", "description",
		"pi_firstname", "pi_lastname", "URI",
	},
	Subjects: {
		"ID", "label", "project", "insert_date", "insert_user", "URI",
	},
	Experiments: {
		"ID", "label", "project", "date", "xsiType", "insert_date", "URI",
	},
	Scans: {
		"ID", "type", "quality", "series_description", "note", "xsiType", "URI",
	},
	Resources: {
		"xnat_abstractresource_id", "label", "element_name", "category",
		"cat_id", "format", "file_count", "file_size",
	},
	Files: {
		"Name", "Size", "URI", "collection", "file_tags",
		"file_format", "file_content", "cat_ID",
	},
}

// Searchable attributes per level, queried with a wildcard by Search.
var Searchable = map[Level][]string{
	Projects:    {"ID", "secondary_ID", "name", "pi_firstname", "pi_lastname", "description"},
	Subjects:    {"ID", "label"},
	Experiments: {"ID", "label"},
}

// SearchLevels in the order Search visits them.
var SearchLevels = []Level{Projects, Subjects, Experiments}

// ImagingSessionFilter restricts experiment searches to MR or PET sessions.
const ImagingSessionFilter = "xsiType=xnat:mrSessionData,xnat:petSessionData"

func (l Level) Valid() bool {
	_, ok := Attributes[l]
	return ok
}

// Child returns the next level down, or "" for Files.
func (l Level) Child() Level {
	for i, h := range Hierarchy {
		if h == l && i+1 < len(Hierarchy) {
			return Hierarchy[i+1]
		}
	}
	return ""
}

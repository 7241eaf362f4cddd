// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package xnat

import (
	"path"
	"strings"
)

// SceneResource is the resource folder scene packages are uploaded to.
const SceneResource = "Slicer"

// StripQuery drops everything from the first "?".
func StripQuery(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		return uri[:i]
	}
	return uri
}

// PathEndsWith reports whether the path of uri (query ignored, trailing
// slash ignored) ends in "/"+segment.
func PathEndsWith(uri, segment string) bool {
	p := strings.TrimRight(StripQuery(uri), "/")
	return strings.HasSuffix(p, "/"+segment)
}

// BaseName is the last path segment of uri.
func BaseName(uri string) string {
	return path.Base(strings.TrimRight(StripQuery(uri), "/"))
}

// LevelOf returns the deepest level named in uri, e.g. "experiments" for
// /projects/P/subjects/S/experiments/E.
func LevelOf(uri string) Level {
	segs := strings.Split(strings.Trim(StripQuery(uri), "/"), "/")
	var last Level
	for _, s := range segs {
		if l := Level(s); l.Valid() {
			last = l
		}
	}
	return last
}

// SceneUploadURI is where a scene package for an experiment is stored.
func SceneUploadURI(project, subject, experiment, file string) string {
	return path.Join("/projects", project, "subjects", subject,
		"experiments", experiment, "resources", SceneResource, "files", file)
}

// ZipURI asks XNAT to return a folder listing as one zip archive.
func ZipURI(uri string) string {
	if strings.Contains(uri, "?") {
		return uri + "&format=zip"
	}
	return uri + "?format=zip"
}
